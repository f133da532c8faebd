// Package daos holds the MongoDB data access objects. Each DAO owns one
// collection and is built from an explicit *mongo.Database handle.
package daos

import (
	"context"
	"errors"
	"fmt"

	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound covers missing documents and ids that are not valid ObjectIDs.
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

const (
	tuitsCollection     = "tuits"
	usersCollection     = "users"
	likesCollection     = "likes"
	dislikesCollection  = "dislikes"
	bookmarksCollection = "bookmarks"
	followsCollection   = "follows"
	messagesCollection  = "messages"
)

type TuitDao interface {
	FindAll(ctx context.Context) ([]models.Tuit, error)
	FindByUser(ctx context.Context, uid string) ([]models.Tuit, error)
	FindByID(ctx context.Context, tid string) (*models.Tuit, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tuit, error)
	Search(ctx context.Context, keywords []string, limit int) ([]models.Tuit, error)
	Create(ctx context.Context, uid string, tuit *models.Tuit) (*models.Tuit, error)
	Update(ctx context.Context, tid string, tuit *models.Tuit) error
	UpdateStats(ctx context.Context, tid string, stats models.Stats) error
	Delete(ctx context.Context, tid string) error
}

type UserDao interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, uid string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, uid string, user *models.User) error
	Delete(ctx context.Context, uid string) error
}

// ReactionDao is the shared contract of the likes and dislikes collections.
type ReactionDao interface {
	Exists(ctx context.Context, uid, tid string) (bool, error)
	Count(ctx context.Context, tid string) (int, error)
	Create(ctx context.Context, uid, tid string) error
	Delete(ctx context.Context, uid, tid string) error
	// TuitIDsByUser returns the tuits uid reacted to, oldest reaction first.
	TuitIDsByUser(ctx context.Context, uid string) ([]primitive.ObjectID, error)
	UserIDsByTuit(ctx context.Context, tid string) ([]primitive.ObjectID, error)
}

type BookmarkDao interface {
	FindByUser(ctx context.Context, uid string) ([]models.Bookmark, error)
	FindByTuit(ctx context.Context, tid string) ([]models.Bookmark, error)
	Find(ctx context.Context, uid, tid string) ([]models.Bookmark, error)
	Create(ctx context.Context, uid, tid string) (*models.Bookmark, error)
	Delete(ctx context.Context, uid, tid string) (int64, error)
}

type FollowDao interface {
	FindFollowing(ctx context.Context, uid string) ([]models.Follow, error)
	FindFollowers(ctx context.Context, uid string) ([]models.Follow, error)
	Create(ctx context.Context, uid, auid string) (*models.Follow, error)
	Delete(ctx context.Context, uid, auid string) (int64, error)
	DeleteAllFollowers(ctx context.Context, uid string) (int64, error)
	DeleteAllFollowing(ctx context.Context, uid string) (int64, error)
}

type MessageDao interface {
	FindAll(ctx context.Context) ([]models.Message, error)
	FindSent(ctx context.Context, uid string) ([]models.Message, error)
	FindReceived(ctx context.Context, uid string) ([]models.Message, error)
	FindByID(ctx context.Context, mid string) (*models.Message, error)
	Create(ctx context.Context, from, to string, msg *models.Message) (*models.Message, error)
	Update(ctx context.Context, mid string, msg *models.Message) error
	Delete(ctx context.Context, mid string) (int64, error)
	DeleteAllSent(ctx context.Context, uid string) (int64, error)
	DeleteAllReceived(ctx context.Context, uid string) (int64, error)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, ErrNotFound)
	}
	return oid, nil
}

func objectIDs(a, b string) (primitive.ObjectID, primitive.ObjectID, error) {
	x, err := objectID(a)
	if err != nil {
		return x, x, err
	}
	y, err := objectID(b)
	return x, y, err
}

func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func aggregateAll[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// populate 把 localField 引用的单个文档展开到 as 字段；引用缺失时 as 字段不存在
func populate(from, localField, as string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + as},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// populateUser also strips the password hash from the embedded user.
func populateUser(localField, as string) mongo.Pipeline {
	return append(populate(usersCollection, localField, as),
		bson.D{{Key: "$project", Value: bson.D{{Key: as + ".password", Value: 0}}}})
}

func chain(parts ...mongo.Pipeline) mongo.Pipeline {
	out := mongo.Pipeline{}
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func match(filter bson.D) mongo.Pipeline {
	return mongo.Pipeline{{{Key: "$match", Value: filter}}}
}

// EnsureIndexes creates the unique pair indexes that back the one-reaction-per-user rule.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	pairs := map[string]bson.D{
		likesCollection:     {{Key: "tuit", Value: 1}, {Key: "likedBy", Value: 1}},
		dislikesCollection:  {{Key: "tuit", Value: 1}, {Key: "dislikedBy", Value: 1}},
		bookmarksCollection: {{Key: "bookmarkedTuit", Value: 1}, {Key: "bookmarkedBy", Value: 1}},
		followsCollection:   {{Key: "userFollowed", Value: 1}, {Key: "userFollowing", Value: 1}},
		usersCollection:     {{Key: "username", Value: 1}},
	}
	for coll, keys := range pairs {
		model := mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("index %s: %w", coll, err)
		}
	}
	secondary := map[string]bson.D{
		tuitsCollection:    {{Key: "postedBy", Value: 1}},
		messagesCollection: {{Key: "from", Value: 1}},
	}
	for coll, keys := range secondary {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
			return fmt.Errorf("index %s: %w", coll, err)
		}
	}
	return nil
}
