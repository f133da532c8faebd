package daos

import (
	"context"

	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reactionDao serves both the likes and the dislikes collection; they only
// differ in the name of the field holding the reacting user.
type reactionDao struct {
	coll      *mongo.Collection
	userField string
	newDoc    func(tuit, user primitive.ObjectID) interface{}
}

func NewLikeDao(db *mongo.Database) ReactionDao {
	return &reactionDao{
		coll:      db.Collection(likesCollection),
		userField: "likedBy",
		newDoc: func(tuit, user primitive.ObjectID) interface{} {
			return &models.Like{ID: primitive.NewObjectID(), Tuit: tuit, LikedBy: user}
		},
	}
}

func NewDislikeDao(db *mongo.Database) ReactionDao {
	return &reactionDao{
		coll:      db.Collection(dislikesCollection),
		userField: "dislikedBy",
		newDoc: func(tuit, user primitive.ObjectID) interface{} {
			return &models.Dislike{ID: primitive.NewObjectID(), Tuit: tuit, DislikedBy: user}
		},
	}
}

func (d *reactionDao) pair(uid, tid string) (bson.D, error) {
	u, t, err := objectIDs(uid, tid)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: "tuit", Value: t}, {Key: d.userField, Value: u}}, nil
}

func (d *reactionDao) Exists(ctx context.Context, uid, tid string) (bool, error) {
	filter, err := d.pair(uid, tid)
	if err != nil {
		return false, err
	}
	n, err := d.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, storeErr(d.coll.Name()+" exists", err)
	}
	return n > 0, nil
}

func (d *reactionDao) Count(ctx context.Context, tid string) (int, error) {
	t, err := objectID(tid)
	if err != nil {
		return 0, err
	}
	n, err := d.coll.CountDocuments(ctx, bson.D{{Key: "tuit", Value: t}})
	if err != nil {
		return 0, storeErr(d.coll.Name()+" count", err)
	}
	return int(n), nil
}

func (d *reactionDao) Create(ctx context.Context, uid, tid string) error {
	u, t, err := objectIDs(uid, tid)
	if err != nil {
		return err
	}
	if _, err := d.coll.InsertOne(ctx, d.newDoc(t, u)); err != nil {
		return storeErr(d.coll.Name()+" create", err)
	}
	return nil
}

func (d *reactionDao) Delete(ctx context.Context, uid, tid string) error {
	filter, err := d.pair(uid, tid)
	if err != nil {
		return err
	}
	if _, err := d.coll.DeleteOne(ctx, filter); err != nil {
		return storeErr(d.coll.Name()+" delete", err)
	}
	return nil
}

func (d *reactionDao) TuitIDsByUser(ctx context.Context, uid string) ([]primitive.ObjectID, error) {
	u, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	return d.distinctRefs(ctx, bson.D{{Key: d.userField, Value: u}}, "tuit")
}

func (d *reactionDao) UserIDsByTuit(ctx context.Context, tid string) ([]primitive.ObjectID, error) {
	t, err := objectID(tid)
	if err != nil {
		return nil, err
	}
	return d.distinctRefs(ctx, bson.D{{Key: "tuit", Value: t}}, d.userField)
}

func (d *reactionDao) distinctRefs(ctx context.Context, filter bson.D, field string) ([]primitive.ObjectID, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: field, Value: 1}}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	docs, err := findAll[bson.M](ctx, d.coll, filter, opts)
	if err != nil {
		return nil, storeErr(d.coll.Name()+" find", err)
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		if id, ok := doc[field].(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
