package daos

import (
	"context"

	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type followDao struct {
	coll *mongo.Collection
}

func NewFollowDao(db *mongo.Database) FollowDao {
	return &followDao{coll: db.Collection(followsCollection)}
}

// FindFollowing lists the follows where uid is the follower.
func (d *followDao) FindFollowing(ctx context.Context, uid string) ([]models.Follow, error) {
	return d.findBy(ctx, "userFollowing", uid)
}

// FindFollowers lists the follows where uid is being followed.
func (d *followDao) FindFollowers(ctx context.Context, uid string) ([]models.Follow, error) {
	return d.findBy(ctx, "userFollowed", uid)
}

func (d *followDao) findBy(ctx context.Context, field, uid string) ([]models.Follow, error) {
	u, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	follows, err := findAll[models.Follow](ctx, d.coll, bson.D{{Key: field, Value: u}})
	if err != nil {
		return nil, storeErr("find follows", err)
	}
	return follows, nil
}

// Create records that uid follows auid.
func (d *followDao) Create(ctx context.Context, uid, auid string) (*models.Follow, error) {
	u, a, err := objectIDs(uid, auid)
	if err != nil {
		return nil, err
	}
	f := &models.Follow{ID: primitive.NewObjectID(), UserFollowed: a, UserFollowing: u}
	if _, err := d.coll.InsertOne(ctx, f); err != nil {
		return nil, storeErr("create follow", err)
	}
	return f, nil
}

func (d *followDao) Delete(ctx context.Context, uid, auid string) (int64, error) {
	u, a, err := objectIDs(uid, auid)
	if err != nil {
		return 0, err
	}
	res, err := d.coll.DeleteOne(ctx, bson.D{{Key: "userFollowed", Value: a}, {Key: "userFollowing", Value: u}})
	if err != nil {
		return 0, storeErr("delete follow", err)
	}
	return res.DeletedCount, nil
}

func (d *followDao) DeleteAllFollowers(ctx context.Context, uid string) (int64, error) {
	return d.deleteBy(ctx, "userFollowed", uid)
}

func (d *followDao) DeleteAllFollowing(ctx context.Context, uid string) (int64, error) {
	return d.deleteBy(ctx, "userFollowing", uid)
}

func (d *followDao) deleteBy(ctx context.Context, field, uid string) (int64, error) {
	u, err := objectID(uid)
	if err != nil {
		return 0, err
	}
	res, err := d.coll.DeleteMany(ctx, bson.D{{Key: field, Value: u}})
	if err != nil {
		return 0, storeErr("delete follows", err)
	}
	return res.DeletedCount, nil
}
