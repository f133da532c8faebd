package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stats 是帖子上冗余存储的反应计数，只能由点赞/点踩切换逻辑整体覆盖
type Stats struct {
	Likes    int `bson:"likes" json:"likes"`
	Dislikes int `bson:"dislikes" json:"dislikes"`
	Replies  int `bson:"replies" json:"replies"`
	Retuits  int `bson:"retuits" json:"retuits"`
}

type Tuit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Tuit         string             `bson:"tuit" json:"tuit" binding:"required"`
	PostedBy     primitive.ObjectID `bson:"postedBy" json:"postedBy"`
	PostedOn     time.Time          `bson:"postedOn" json:"postedOn"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Youtube      string             `bson:"youtube,omitempty" json:"youtube,omitempty"`
	AvatarLogo   string             `bson:"avatarLogo,omitempty" json:"avatarLogo,omitempty"`
	ImageOverlay string             `bson:"imageOverlay,omitempty" json:"imageOverlay,omitempty"`
	Stats        Stats              `bson:"stats" json:"stats"`

	// Author 是读取时按 postedBy 展开的作者，不落库
	Author *User `bson:"author,omitempty" json:"author,omitempty"`
}
