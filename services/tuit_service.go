package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"tuiter/daos"
	"tuiter/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrEmptyTuit = errors.New("tuit body is empty")

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

type TuitService struct {
	tuits daos.TuitDao
	rank  RankTracker
}

func NewTuitService(tuits daos.TuitDao, rank RankTracker) *TuitService {
	if rank == nil {
		rank = NopRank{}
	}
	return &TuitService{tuits: tuits, rank: rank}
}

func (s *TuitService) FindAll(ctx context.Context) ([]models.Tuit, error) {
	return s.tuits.FindAll(ctx)
}

func (s *TuitService) FindByUser(ctx context.Context, uid string) ([]models.Tuit, error) {
	return s.tuits.FindByUser(ctx, uid)
}

func (s *TuitService) FindByID(ctx context.Context, tid string) (*models.Tuit, error) {
	return s.tuits.FindByID(ctx, tid)
}

func (s *TuitService) Create(ctx context.Context, uid string, tuit *models.Tuit) (*models.Tuit, error) {
	if strings.TrimSpace(tuit.Tuit) == "" {
		return nil, ErrEmptyTuit
	}
	return s.tuits.Create(ctx, uid, tuit)
}

func (s *TuitService) Update(ctx context.Context, tid string, tuit *models.Tuit) error {
	if strings.TrimSpace(tuit.Tuit) == "" {
		return ErrEmptyTuit
	}
	return s.tuits.Update(ctx, tid, tuit)
}

func (s *TuitService) Delete(ctx context.Context, tid string) error {
	if err := s.tuits.Delete(ctx, tid); err != nil {
		return err
	}
	if err := s.rank.Remove(tid); err != nil {
		log.Printf("rank remove for tuit %s: %v", tid, err)
	}
	return nil
}

// Search 简单的基于关键词检索：帖子正文需包含全部关键词
func (s *TuitService) Search(ctx context.Context, query string, limit int) ([]models.Tuit, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return []models.Tuit{}, nil
	}
	return s.tuits.Search(ctx, keywords, limit)
}

// Top 返回排行榜，并尝试附上帖子内容（容错：帖子查不到时只返回 id 和分数）
func (s *TuitService) Top(ctx context.Context, kind models.ReactionKind, n int) ([]RankEntry, error) {
	entries, err := s.rank.Top(kind, n)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		if oid, err := primitive.ObjectIDFromHex(e.TuitID); err == nil {
			ids = append(ids, oid)
		}
	}
	tuits, err := s.tuits.FindByIDs(ctx, ids)
	if err != nil {
		log.Printf("load ranked tuits: %v", err)
		return entries, nil
	}
	byID := make(map[string]models.Tuit, len(tuits))
	for _, t := range tuits {
		byID[t.ID.Hex()] = t
	}
	for i := range entries {
		if t, ok := byID[entries[i].TuitID]; ok {
			entries[i].Tuit = &t
		}
	}
	return entries, nil
}
