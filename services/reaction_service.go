package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"tuiter/daos"
	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReactionDeps struct {
	Tuits    daos.TuitDao
	Users    daos.UserDao
	Likes    daos.ReactionDao
	Dislikes daos.ReactionDao
	Tx       daos.TxRunner
	Events   Publisher
	Rank     RankTracker
}

// ReactionService 负责点赞/点踩的互斥切换，并维护帖子上的冗余计数
type ReactionService struct {
	tuits daos.TuitDao
	users daos.UserDao
	tx    daos.TxRunner

	events Publisher
	rank   RankTracker

	like    reactionSide
	dislike reactionSide
}

// reactionSide describes one of the two mutually exclusive reactions.
type reactionSide struct {
	dao     daos.ReactionDao
	counter func(*models.Stats) *int
	on      models.ReactionKind
	off     models.ReactionKind
}

func NewReactionService(deps ReactionDeps) *ReactionService {
	s := &ReactionService{
		tuits:  deps.Tuits,
		users:  deps.Users,
		tx:     deps.Tx,
		events: deps.Events,
		rank:   deps.Rank,
		like: reactionSide{
			dao:     deps.Likes,
			counter: func(st *models.Stats) *int { return &st.Likes },
			on:      models.KindLike,
			off:     models.KindUnlike,
		},
		dislike: reactionSide{
			dao:     deps.Dislikes,
			counter: func(st *models.Stats) *int { return &st.Dislikes },
			on:      models.KindDislike,
			off:     models.KindUndislike,
		},
	}
	if s.tx == nil {
		s.tx = daos.NoTx{}
	}
	if s.events == nil {
		s.events = NopPublisher{}
	}
	if s.rank == nil {
		s.rank = NopRank{}
	}
	return s
}

func (s *ReactionService) side(kind models.ReactionKind) (reactionSide, error) {
	switch kind {
	case models.KindLike:
		return s.like, nil
	case models.KindDislike:
		return s.dislike, nil
	}
	return reactionSide{}, fmt.Errorf("unknown reaction %q", kind)
}

// ToggleDislike 切换用户对帖子的点踩状态；若用户已点赞则先取消点赞
func (s *ReactionService) ToggleDislike(ctx context.Context, uid, tid string) error {
	return s.toggle(ctx, uid, tid, s.dislike, s.like)
}

// ToggleLike 切换用户对帖子的点赞状态；若用户已点踩则先取消点踩
func (s *ReactionService) ToggleLike(ctx context.Context, uid, tid string) error {
	return s.toggle(ctx, uid, tid, s.like, s.dislike)
}

// toggle flips target for (uid, tid), evicting sibling first when it exists,
// then overwrites the tuit's whole stats document. Unless s.tx is
// transactional, concurrent toggles on one tuit can lose counter updates.
func (s *ReactionService) toggle(ctx context.Context, uid, tid string, target, sibling reactionSide) error {
	var (
		stats models.Stats
		kinds []models.ReactionKind
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		kinds = kinds[:0]

		hasTarget, err := target.dao.Exists(ctx, uid, tid)
		if err != nil {
			return err
		}
		hasSibling, err := sibling.dao.Exists(ctx, uid, tid)
		if err != nil {
			return err
		}
		tuit, err := s.tuits.FindByID(ctx, tid)
		if err != nil {
			return err
		}
		stats = tuit.Stats

		if hasTarget {
			if err := target.dao.Delete(ctx, uid, tid); err != nil {
				return err
			}
			*target.counter(&stats)--
			kinds = append(kinds, target.off)
		} else {
			if hasSibling {
				if err := sibling.dao.Delete(ctx, uid, tid); err != nil {
					return err
				}
				*sibling.counter(&stats)--
				kinds = append(kinds, sibling.off)
			}
			if err := target.dao.Create(ctx, uid, tid); err != nil {
				return err
			}
			*target.counter(&stats)++
			kinds = append(kinds, target.on)
		}

		return s.tuits.UpdateStats(ctx, tid, stats)
	})
	if err != nil {
		return fmt.Errorf("toggle %s on tuit %s: %w", target.on, tid, err)
	}

	s.afterToggle(ctx, uid, tid, stats, kinds)
	return nil
}

// afterToggle 排行和审计事件失败不影响主流程
func (s *ReactionService) afterToggle(ctx context.Context, uid, tid string, stats models.Stats, kinds []models.ReactionKind) {
	if err := s.rank.Update(tid, stats); err != nil {
		log.Printf("rank update for tuit %s: %v", tid, err)
	}
	now := time.Now().UTC()
	for _, kind := range kinds {
		ev := &models.ReactionEvent{
			Kind:       kind,
			UserID:     uid,
			TuitID:     tid,
			Likes:      stats.Likes,
			Dislikes:   stats.Dislikes,
			OccurredAt: now,
		}
		if err := s.events.Publish(ctx, ev); err != nil {
			log.Printf("publish %s event for tuit %s: %v", kind, tid, err)
		}
	}
}

// UserReacted reports whether uid currently holds the given reaction on tid.
func (s *ReactionService) UserReacted(ctx context.Context, kind models.ReactionKind, uid, tid string) (bool, error) {
	side, err := s.side(kind)
	if err != nil {
		return false, err
	}
	return side.dao.Exists(ctx, uid, tid)
}

func (s *ReactionService) Count(ctx context.Context, kind models.ReactionKind, tid string) (int, error) {
	side, err := s.side(kind)
	if err != nil {
		return 0, err
	}
	return side.dao.Count(ctx, tid)
}

// TuitsReactedByUser 返回用户点赞/点踩过的帖子，已删除的帖子会被过滤掉
func (s *ReactionService) TuitsReactedByUser(ctx context.Context, kind models.ReactionKind, uid string) ([]models.Tuit, error) {
	side, err := s.side(kind)
	if err != nil {
		return nil, err
	}
	ids, err := side.dao.TuitIDsByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	found, err := s.tuits.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Tuit, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	tuits := make([]models.Tuit, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tuits = append(tuits, t)
		}
	}
	return tuits, nil
}

func (s *ReactionService) UsersThatReacted(ctx context.Context, kind models.ReactionKind, tid string) ([]models.User, error) {
	side, err := s.side(kind)
	if err != nil {
		return nil, err
	}
	ids, err := side.dao.UserIDsByTuit(ctx, tid)
	if err != nil {
		return nil, err
	}
	found, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}
