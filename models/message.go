package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Message string             `bson:"message" json:"message"`
	To      primitive.ObjectID `bson:"to" json:"to"`
	From    primitive.ObjectID `bson:"from" json:"from"`
	SentOn  time.Time          `bson:"sentOn" json:"sentOn"`

	// 读取时展开的发件人和收件人
	Sender    *User `bson:"sender,omitempty" json:"sender,omitempty"`
	Recipient *User `bson:"recipient,omitempty" json:"recipient,omitempty"`
}
