package models

import (
	"time"

	"gorm.io/gorm"
)

type ReactionKind string

const (
	KindLike      ReactionKind = "like"
	KindUnlike    ReactionKind = "unlike"
	KindDislike   ReactionKind = "dislike"
	KindUndislike ReactionKind = "undislike"
)

// ReactionEvent 表示一次点赞/点踩切换的审计记录（经 MQ 异步写入 MySQL，用于审计/分析）
type ReactionEvent struct {
	gorm.Model `json:"-"`
	Kind       ReactionKind `gorm:"size:16;index" json:"kind"`
	UserID     string       `gorm:"size:24;index" json:"userId"`
	TuitID     string       `gorm:"size:24;index" json:"tuitId"`
	Likes      int          `json:"likes"`
	Dislikes   int          `json:"dislikes"`
	OccurredAt time.Time    `json:"occurredAt"`
}
