package daos

import (
	"context"
	"time"

	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDao struct {
	coll *mongo.Collection
}

func NewUserDao(db *mongo.Database) UserDao {
	return &userDao{coll: db.Collection(usersCollection)}
}

func (d *userDao) FindAll(ctx context.Context) ([]models.User, error) {
	users, err := findAll[models.User](ctx, d.coll, bson.D{})
	if err != nil {
		return nil, storeErr("find users", err)
	}
	return users, nil
}

func (d *userDao) FindByID(ctx context.Context, uid string) (*models.User, error) {
	u, err := objectID(uid)
	if err != nil {
		return nil, err
	}
	return d.findOne(ctx, bson.D{{Key: "_id", Value: u}})
}

func (d *userDao) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	users, err := findAll[models.User](ctx, d.coll, filter)
	if err != nil {
		return nil, storeErr("find users by ids", err)
	}
	return users, nil
}

func (d *userDao) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (d *userDao) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var user models.User
	if err := d.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, storeErr("find user", err)
	}
	return &user, nil
}

func (d *userDao) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	created.ID = primitive.NewObjectID()
	if created.Joined.IsZero() {
		created.Joined = time.Now().UTC()
	}
	if _, err := d.coll.InsertOne(ctx, &created); err != nil {
		return nil, storeErr("create user", err)
	}
	return &created, nil
}

// Update sets profile fields. An empty Password keeps the stored hash.
func (d *userDao) Update(ctx context.Context, uid string, user *models.User) error {
	u, err := objectID(uid)
	if err != nil {
		return err
	}
	set := bson.D{
		{Key: "email", Value: user.Email},
		{Key: "firstName", Value: user.FirstName},
		{Key: "lastName", Value: user.LastName},
		{Key: "profilePhoto", Value: user.ProfilePhoto},
		{Key: "biography", Value: user.Biography},
	}
	if user.Password != "" {
		set = append(set, bson.E{Key: "password", Value: user.Password})
	}
	res, err := d.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: u}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return storeErr("update user", err)
	}
	if res.MatchedCount == 0 {
		return storeErr("update user", mongo.ErrNoDocuments)
	}
	return nil
}

func (d *userDao) Delete(ctx context.Context, uid string) error {
	u, err := objectID(uid)
	if err != nil {
		return err
	}
	res, err := d.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: u}})
	if err != nil {
		return storeErr("delete user", err)
	}
	if res.DeletedCount == 0 {
		return storeErr("delete user", mongo.ErrNoDocuments)
	}
	return nil
}
