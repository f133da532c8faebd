package daos

import (
	"context"
	"regexp"
	"time"

	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type tuitDao struct {
	coll *mongo.Collection
}

func NewTuitDao(db *mongo.Database) TuitDao {
	return &tuitDao{coll: db.Collection(tuitsCollection)}
}

var newestFirst = mongo.Pipeline{{{Key: "$sort", Value: bson.D{{Key: "postedOn", Value: -1}}}}}

// find runs the given stages and embeds each tuit's author.
func (d *tuitDao) find(ctx context.Context, op string, stages ...mongo.Pipeline) ([]models.Tuit, error) {
	tuits, err := aggregateAll[models.Tuit](ctx, d.coll, chain(append(stages, populateUser("postedBy", "author"))...))
	if err != nil {
		return nil, storeErr(op, err)
	}
	return tuits, nil
}

func (d *tuitDao) FindAll(ctx context.Context) ([]models.Tuit, error) {
	return d.find(ctx, "find tuits", newestFirst)
}

func (d *tuitDao) FindByUser(ctx context.Context, uid string) ([]models.Tuit, error) {
	u, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	return d.find(ctx, "find tuits by user", match(bson.D{{Key: "postedBy", Value: u}}), newestFirst)
}

func (d *tuitDao) FindByID(ctx context.Context, tid string) (*models.Tuit, error) {
	t, err := objectID(tid)
	if err != nil {
		return nil, err
	}
	tuits, err := d.find(ctx, "find tuit",
		match(bson.D{{Key: "_id", Value: t}}),
		mongo.Pipeline{{{Key: "$limit", Value: 1}}})
	if err != nil {
		return nil, err
	}
	if len(tuits) == 0 {
		return nil, storeErr("find tuit", mongo.ErrNoDocuments)
	}
	return &tuits[0], nil
}

func (d *tuitDao) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Tuit, error) {
	if len(ids) == 0 {
		return []models.Tuit{}, nil
	}
	return d.find(ctx, "find tuits by ids", match(bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}))
}

// Search matches tuits whose body contains every keyword, case-insensitively.
func (d *tuitDao) Search(ctx context.Context, keywords []string, limit int) ([]models.Tuit, error) {
	clauses := bson.A{}
	for _, kw := range keywords {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(kw), Options: "i"}
		clauses = append(clauses, bson.D{{Key: "tuit", Value: pattern}})
	}
	filter := bson.D{}
	if len(clauses) > 0 {
		filter = bson.D{{Key: "$and", Value: clauses}}
	}
	return d.find(ctx, "search tuits",
		match(filter),
		newestFirst,
		mongo.Pipeline{{{Key: "$limit", Value: int64(limit)}}})
}

func (d *tuitDao) Create(ctx context.Context, uid string, tuit *models.Tuit) (*models.Tuit, error) {
	u, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	created := *tuit
	created.ID = primitive.NewObjectID()
	created.PostedBy = u
	created.Stats = models.Stats{}
	created.Author = nil
	if created.PostedOn.IsZero() {
		created.PostedOn = time.Now().UTC()
	}
	if _, err := d.coll.InsertOne(ctx, &created); err != nil {
		return nil, storeErr("create tuit", err)
	}
	return &created, nil
}

// Update replaces the editable fields. Stats and authorship are left alone.
func (d *tuitDao) Update(ctx context.Context, tid string, tuit *models.Tuit) error {
	t, err := objectID(tid)
	if err != nil {
		return err
	}
	set := bson.D{
		{Key: "tuit", Value: tuit.Tuit},
		{Key: "image", Value: tuit.Image},
		{Key: "youtube", Value: tuit.Youtube},
		{Key: "avatarLogo", Value: tuit.AvatarLogo},
		{Key: "imageOverlay", Value: tuit.ImageOverlay},
	}
	return d.updateOne(ctx, t, set, "update tuit")
}

// UpdateStats overwrites the whole embedded stats document.
func (d *tuitDao) UpdateStats(ctx context.Context, tid string, stats models.Stats) error {
	t, err := objectID(tid)
	if err != nil {
		return err
	}
	return d.updateOne(ctx, t, bson.D{{Key: "stats", Value: stats}}, "update tuit stats")
}

func (d *tuitDao) updateOne(ctx context.Context, id primitive.ObjectID, set bson.D, op string) error {
	res, err := d.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return storeErr(op, err)
	}
	if res.MatchedCount == 0 {
		return storeErr(op, mongo.ErrNoDocuments)
	}
	return nil
}

func (d *tuitDao) Delete(ctx context.Context, tid string) error {
	t, err := objectID(tid)
	if err != nil {
		return err
	}
	res, err := d.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: t}})
	if err != nil {
		return storeErr("delete tuit", err)
	}
	if res.DeletedCount == 0 {
		return storeErr("delete tuit", mongo.ErrNoDocuments)
	}
	return nil
}
