package daos

import (
	"context"

	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type bookmarkDao struct {
	coll *mongo.Collection
}

func NewBookmarkDao(db *mongo.Database) BookmarkDao {
	return &bookmarkDao{coll: db.Collection(bookmarksCollection)}
}

func (d *bookmarkDao) find(ctx context.Context, filter bson.D, embed mongo.Pipeline) ([]models.Bookmark, error) {
	bookmarks, err := aggregateAll[models.Bookmark](ctx, d.coll, chain(match(filter), embed))
	if err != nil {
		return nil, storeErr("find bookmarks", err)
	}
	return bookmarks, nil
}

// FindByUser 返回用户的书签，并展开被收藏的帖子
func (d *bookmarkDao) FindByUser(ctx context.Context, uid string) ([]models.Bookmark, error) {
	u, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	return d.find(ctx, bson.D{{Key: "bookmarkedBy", Value: u}}, populate(tuitsCollection, "bookmarkedTuit", "tuit"))
}

// FindByTuit 返回帖子的书签，并展开收藏者
func (d *bookmarkDao) FindByTuit(ctx context.Context, tid string) ([]models.Bookmark, error) {
	t, err := objectID(tid)
	if err != nil {
		return nil, err
	}
	return d.find(ctx, bson.D{{Key: "bookmarkedTuit", Value: t}}, populateUser("bookmarkedBy", "user"))
}

func (d *bookmarkDao) Find(ctx context.Context, uid, tid string) ([]models.Bookmark, error) {
	u, t, err := objectIDs(uid, tid)
	if err != nil {
		return nil, err
	}
	return d.find(ctx, bson.D{{Key: "bookmarkedTuit", Value: t}, {Key: "bookmarkedBy", Value: u}}, populateUser("bookmarkedBy", "user"))
}

func (d *bookmarkDao) Create(ctx context.Context, uid, tid string) (*models.Bookmark, error) {
	u, t, err := objectIDs(uid, tid)
	if err != nil {
		return nil, err
	}
	b := &models.Bookmark{ID: primitive.NewObjectID(), BookmarkedTuit: t, BookmarkedBy: u}
	if _, err := d.coll.InsertOne(ctx, b); err != nil {
		return nil, storeErr("create bookmark", err)
	}
	return b, nil
}

func (d *bookmarkDao) Delete(ctx context.Context, uid, tid string) (int64, error) {
	u, t, err := objectIDs(uid, tid)
	if err != nil {
		return 0, err
	}
	res, err := d.coll.DeleteOne(ctx, bson.D{{Key: "bookmarkedTuit", Value: t}, {Key: "bookmarkedBy", Value: u}})
	if err != nil {
		return 0, storeErr("delete bookmark", err)
	}
	return res.DeletedCount, nil
}
