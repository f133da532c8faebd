package services

import (
	"fmt"

	"tuiter/models"

	"github.com/go-redis/redis"
)

type RankEntry struct {
	TuitID string       `json:"id"`
	Score  int64        `json:"score"`
	Rank   int          `json:"rank"`
	Tuit   *models.Tuit `json:"tuit,omitempty"`
}

// RankTracker 维护按点赞数/点踩数排序的帖子排行
type RankTracker interface {
	Update(tid string, stats models.Stats) error
	Remove(tid string) error
	Top(kind models.ReactionKind, n int) ([]RankEntry, error)
}

type NopRank struct{}

func (NopRank) Update(string, models.Stats) error { return nil }
func (NopRank) Remove(string) error { return nil }
func (NopRank) Top(models.ReactionKind, int) ([]RankEntry, error) { return []RankEntry{}, nil }

const (
	likesRankKey    = "rank:tuit:likes"
	dislikesRankKey = "rank:tuit:dislikes"
)

type redisRank struct {
	client *redis.Client
}

func NewRedisRank(client *redis.Client) RankTracker {
	return &redisRank{client: client}
}

func rankKey(kind models.ReactionKind) (string, error) {
	switch kind {
	case models.KindLike:
		return likesRankKey, nil
	case models.KindDislike:
		return dislikesRankKey, nil
	}
	return "", fmt.Errorf("no rank for %q", kind)
}

// Update 用计数的绝对值覆盖分数，而不是 ZINCRBY，保证排行与帖子上的计数一致
func (r *redisRank) Update(tid string, stats models.Stats) error {
	pipe := r.client.TxPipeline()
	pipe.ZAdd(likesRankKey, redis.Z{Score: float64(stats.Likes), Member: tid})
	pipe.ZAdd(dislikesRankKey, redis.Z{Score: float64(stats.Dislikes), Member: tid})
	_, err := pipe.Exec()
	return err
}

func (r *redisRank) Remove(tid string) error {
	pipe := r.client.TxPipeline()
	pipe.ZRem(likesRankKey, tid)
	pipe.ZRem(dislikesRankKey, tid)
	_, err := pipe.Exec()
	return err
}

func (r *redisRank) Top(kind models.ReactionKind, n int) ([]RankEntry, error) {
	key, err := rankKey(kind)
	if err != nil {
		return nil, err
	}
	zres, err := r.client.ZRevRangeWithScores(key, 0, int64(n-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	list := make([]RankEntry, 0, len(zres))
	for idx, z := range zres {
		member, _ := z.Member.(string)
		list = append(list, RankEntry{TuitID: member, Score: int64(z.Score), Rank: idx + 1})
	}
	return list, nil
}
