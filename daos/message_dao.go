package daos

import (
	"context"
	"time"

	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type messageDao struct {
	coll *mongo.Collection
}

func NewMessageDao(db *mongo.Database) MessageDao {
	return &messageDao{coll: db.Collection(messagesCollection)}
}

var oldestFirst = mongo.Pipeline{{{Key: "$sort", Value: bson.D{{Key: "sentOn", Value: 1}}}}}

// find runs the given stages and embeds sender and recipient.
func (d *messageDao) find(ctx context.Context, op string, stages ...mongo.Pipeline) ([]models.Message, error) {
	stages = append(stages, populateUser("from", "sender"), populateUser("to", "recipient"))
	msgs, err := aggregateAll[models.Message](ctx, d.coll, chain(stages...))
	if err != nil {
		return nil, storeErr(op, err)
	}
	return msgs, nil
}

func (d *messageDao) FindAll(ctx context.Context) ([]models.Message, error) {
	return d.find(ctx, "find messages", oldestFirst)
}

func (d *messageDao) FindSent(ctx context.Context, uid string) ([]models.Message, error) {
	return d.findBy(ctx, "from", uid)
}

func (d *messageDao) FindReceived(ctx context.Context, uid string) ([]models.Message, error) {
	return d.findBy(ctx, "to", uid)
}

func (d *messageDao) findBy(ctx context.Context, field, uid string) ([]models.Message, error) {
	u, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	return d.find(ctx, "find messages", match(bson.D{{Key: field, Value: u}}), oldestFirst)
}

func (d *messageDao) FindByID(ctx context.Context, mid string) (*models.Message, error) {
	m, err := objectID(mid)
	if err != nil {
		return nil, err
	}
	msgs, err := d.find(ctx, "find message", match(bson.D{{Key: "_id", Value: m}}))
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, storeErr("find message", mongo.ErrNoDocuments)
	}
	return &msgs[0], nil
}

func (d *messageDao) Create(ctx context.Context, from, to string, msg *models.Message) (*models.Message, error) {
	f, t, err := objectIDs(from, to)
	if err != nil {
		return nil, err
	}
	created := *msg
	created.ID = primitive.NewObjectID()
	created.From = f
	created.To = t
	created.Sender, created.Recipient = nil, nil
	if created.SentOn.IsZero() {
		created.SentOn = time.Now().UTC()
	}
	if _, err := d.coll.InsertOne(ctx, &created); err != nil {
		return nil, storeErr("create message", err)
	}
	return &created, nil
}

// Update only edits the text; sender, recipient and timestamp are fixed.
func (d *messageDao) Update(ctx context.Context, mid string, msg *models.Message) error {
	m, err := objectID(mid)
	if err != nil {
		return err
	}
	res, err := d.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: m}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "message", Value: msg.Message}}}})
	if err != nil {
		return storeErr("update message", err)
	}
	if res.MatchedCount == 0 {
		return storeErr("update message", mongo.ErrNoDocuments)
	}
	return nil
}

func (d *messageDao) Delete(ctx context.Context, mid string) (int64, error) {
	m, err := objectID(mid)
	if err != nil {
		return 0, err
	}
	res, err := d.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: m}})
	if err != nil {
		return 0, storeErr("delete message", err)
	}
	return res.DeletedCount, nil
}

func (d *messageDao) DeleteAllSent(ctx context.Context, uid string) (int64, error) {
	return d.deleteBy(ctx, "from", uid)
}

func (d *messageDao) DeleteAllReceived(ctx context.Context, uid string) (int64, error) {
	return d.deleteBy(ctx, "to", uid)
}

func (d *messageDao) deleteBy(ctx context.Context, field, uid string) (int64, error) {
	u, err := objectID(uid)
	if err != nil {
		return 0, err
	}
	res, err := d.coll.DeleteMany(ctx, bson.D{{Key: field, Value: u}})
	if err != nil {
		return 0, storeErr("delete messages", err)
	}
	return res.DeletedCount, nil
}
