package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like 表示用户对帖子的点赞关系，(tuit, likedBy) 唯一
type Like struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Tuit    primitive.ObjectID `bson:"tuit" json:"tuit"`
	LikedBy primitive.ObjectID `bson:"likedBy" json:"likedBy"`
}

// Dislike 表示用户对帖子的点踩关系，(tuit, dislikedBy) 唯一
type Dislike struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Tuit       primitive.ObjectID `bson:"tuit" json:"tuit"`
	DislikedBy primitive.ObjectID `bson:"dislikedBy" json:"dislikedBy"`
}

type Bookmark struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookmarkedTuit primitive.ObjectID `bson:"bookmarkedTuit" json:"bookmarkedTuit"`
	BookmarkedBy   primitive.ObjectID `bson:"bookmarkedBy" json:"bookmarkedBy"`

	// Tuit or User is filled on reads, depending on which side was looked up.
	Tuit *Tuit `bson:"tuit,omitempty" json:"tuit,omitempty"`
	User *User `bson:"user,omitempty" json:"user,omitempty"`
}

// Follow records that UserFollowing follows UserFollowed.
type Follow struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserFollowed  primitive.ObjectID `bson:"userFollowed" json:"userFollowed"`
	UserFollowing primitive.ObjectID `bson:"userFollowing" json:"userFollowing"`
}
