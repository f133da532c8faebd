package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tuiter/daos"
	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("id %q: %w", id, daos.ErrNotFound)
	}
	return nil
}

// fakeTuitDao 是 TuitDao 的内存实现
type fakeTuitDao struct {
	mu          sync.Mutex
	tuits       map[string]models.Tuit
	statsWrites int
	err         error
}

func newFakeTuitDao(tuits ...models.Tuit) *fakeTuitDao {
	d := &fakeTuitDao{tuits: map[string]models.Tuit{}}
	for _, t := range tuits {
		d.tuits[t.ID.Hex()] = t
	}
	return d
}

func (d *fakeTuitDao) FindAll(ctx context.Context) ([]models.Tuit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Tuit, 0, len(d.tuits))
	for _, t := range d.tuits {
		out = append(out, t)
	}
	return out, d.err
}

func (d *fakeTuitDao) FindByUser(ctx context.Context, uid string) ([]models.Tuit, error) {
	all, _ := d.FindAll(ctx)
	out := []models.Tuit{}
	for _, t := range all {
		if t.PostedBy.Hex() == uid {
			out = append(out, t)
		}
	}
	return out, d.err
}

func (d *fakeTuitDao) FindByID(ctx context.Context, tid string) (*models.Tuit, error) {
	if err := checkID(tid); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	t, ok := d.tuits[tid]
	if !ok {
		return nil, daos.ErrNotFound
	}
	return &t, nil
}

func (d *fakeTuitDao) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tuit, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []models.Tuit{}
	// reverse order on purpose: callers must not rely on store ordering
	for i := len(ids) - 1; i >= 0; i-- {
		if t, ok := d.tuits[ids[i].Hex()]; ok {
			out = append(out, t)
		}
	}
	return out, d.err
}

func (d *fakeTuitDao) Search(ctx context.Context, keywords []string, limit int) ([]models.Tuit, error) {
	all, _ := d.FindAll(ctx)
	sort.Slice(all, func(i, j int) bool { return all[i].Tuit < all[j].Tuit })
	out := []models.Tuit{}
	for _, t := range all {
		match := true
		for _, kw := range keywords {
			if !strings.Contains(strings.ToLower(t.Tuit), strings.ToLower(kw)) {
				match = false
			}
		}
		if match && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, d.err
}

func (d *fakeTuitDao) Create(ctx context.Context, uid string, tuit *models.Tuit) (*models.Tuit, error) {
	if err := checkID(uid); err != nil {
		return nil, err
	}
	created := *tuit
	created.ID = primitive.NewObjectID()
	created.PostedBy, _ = primitive.ObjectIDFromHex(uid)
	created.Stats = models.Stats{}
	d.mu.Lock()
	d.tuits[created.ID.Hex()] = created
	d.mu.Unlock()
	return &created, nil
}

func (d *fakeTuitDao) Update(ctx context.Context, tid string, tuit *models.Tuit) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tuits[tid]
	if !ok {
		return daos.ErrNotFound
	}
	t.Tuit = tuit.Tuit
	t.Image = tuit.Image
	d.tuits[tid] = t
	return nil
}

func (d *fakeTuitDao) UpdateStats(ctx context.Context, tid string, stats models.Stats) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	t, ok := d.tuits[tid]
	if !ok {
		return daos.ErrNotFound
	}
	t.Stats = stats
	d.tuits[tid] = t
	d.statsWrites++
	return nil
}

func (d *fakeTuitDao) Delete(ctx context.Context, tid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tuits[tid]; !ok {
		return daos.ErrNotFound
	}
	delete(d.tuits, tid)
	return nil
}

func (d *fakeTuitDao) stats(tid primitive.ObjectID) models.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tuits[tid.Hex()].Stats
}

// fakeReactionDao 是 ReactionDao 的内存实现
type fakeReactionDao struct {
	mu        sync.Mutex
	pairs     []string // "uid|tid" in insertion order
	createErr error
	existsErr error
}

func key(uid, tid string) string { return uid + "|" + tid }

func (d *fakeReactionDao) index(uid, tid string) int {
	for i, p := range d.pairs {
		if p == key(uid, tid) {
			return i
		}
	}
	return -1
}

func (d *fakeReactionDao) Exists(ctx context.Context, uid, tid string) (bool, error) {
	if err := checkID(tid); err != nil {
		return false, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.existsErr != nil {
		return false, d.existsErr
	}
	return d.index(uid, tid) >= 0, nil
}

func (d *fakeReactionDao) Count(ctx context.Context, tid string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, p := range d.pairs {
		if strings.HasSuffix(p, "|"+tid) {
			n++
		}
	}
	return n, nil
}

func (d *fakeReactionDao) Create(ctx context.Context, uid, tid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.createErr != nil {
		return d.createErr
	}
	if d.index(uid, tid) >= 0 {
		return daos.ErrDuplicate
	}
	d.pairs = append(d.pairs, key(uid, tid))
	return nil
}

func (d *fakeReactionDao) Delete(ctx context.Context, uid, tid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i := d.index(uid, tid); i >= 0 {
		d.pairs = append(d.pairs[:i], d.pairs[i+1:]...)
	}
	return nil
}

func (d *fakeReactionDao) TuitIDsByUser(ctx context.Context, uid string) ([]primitive.ObjectID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := []primitive.ObjectID{}
	for _, p := range d.pairs {
		u, t, _ := strings.Cut(p, "|")
		if u == uid {
			oid, _ := primitive.ObjectIDFromHex(t)
			ids = append(ids, oid)
		}
	}
	return ids, nil
}

func (d *fakeReactionDao) UserIDsByTuit(ctx context.Context, tid string) ([]primitive.ObjectID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := []primitive.ObjectID{}
	for _, p := range d.pairs {
		u, t, _ := strings.Cut(p, "|")
		if t == tid {
			oid, _ := primitive.ObjectIDFromHex(u)
			ids = append(ids, oid)
		}
	}
	return ids, nil
}

func (d *fakeReactionDao) has(uid, tid primitive.ObjectID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index(uid.Hex(), tid.Hex()) >= 0
}

// fakeUserDao 是 UserDao 的内存实现
type fakeUserDao struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserDao(users ...models.User) *fakeUserDao {
	d := &fakeUserDao{users: map[string]models.User{}}
	for _, u := range users {
		d.users[u.ID.Hex()] = u
	}
	return d
}

func (d *fakeUserDao) FindAll(ctx context.Context) ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []models.User{}
	for _, u := range d.users {
		out = append(out, u)
	}
	return out, nil
}

func (d *fakeUserDao) FindByID(ctx context.Context, uid string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[uid]
	if !ok {
		return nil, daos.ErrNotFound
	}
	return &u, nil
}

func (d *fakeUserDao) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := d.users[id.Hex()]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (d *fakeUserDao) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, daos.ErrNotFound
}

func (d *fakeUserDao) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	created.ID = primitive.NewObjectID()
	d.mu.Lock()
	d.users[created.ID.Hex()] = created
	d.mu.Unlock()
	return &created, nil
}

func (d *fakeUserDao) Update(ctx context.Context, uid string, user *models.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[uid]
	if !ok {
		return daos.ErrNotFound
	}
	u.Email = user.Email
	if user.Password != "" {
		u.Password = user.Password
	}
	d.users[uid] = u
	return nil
}

func (d *fakeUserDao) Delete(ctx context.Context, uid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.users, uid)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ReactionEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev *models.ReactionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *ev)
	return p.err
}

func (p *recordingPublisher) kinds() []models.ReactionKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []models.ReactionKind{}
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

type fakeRank struct {
	mu      sync.Mutex
	scores  map[string]models.Stats
	removed []string
	top     []RankEntry
	err     error
}

func (r *fakeRank) Update(tid string, stats models.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scores == nil {
		r.scores = map[string]models.Stats{}
	}
	r.scores[tid] = stats
	return r.err
}

func (r *fakeRank) Remove(tid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, tid)
	return r.err
}

func (r *fakeRank) Top(kind models.ReactionKind, n int) ([]RankEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]RankEntry, len(r.top))
	copy(out, r.top)
	return out, nil
}

type countingTx struct {
	calls int
}

func (c *countingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	c.calls++
	return fn(ctx)
}

type fakeRecorder struct {
	events []models.ReactionEvent
	err    error
}

func (r *fakeRecorder) Record(ctx context.Context, ev *models.ReactionEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *ev)
	return nil
}

var errStore = errors.New("store unavailable")
