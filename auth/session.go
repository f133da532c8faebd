package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tuiter/models"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no session")

type SessionStore interface {
	Create(profile *models.User) (string, error)
	Get(sid string) (*models.User, error)
	Delete(sid string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore keeps session profiles under session:<id>; every read
// slides the expiry forward.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

func (s *redisSessionStore) Create(profile *models.User) (string, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	sid := uuid.NewString()
	if err := s.client.Set(sessionKey(sid), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

func (s *redisSessionStore) Get(sid string) (*models.User, error) {
	if sid == "" {
		return nil, ErrNoSession
	}
	data, err := s.client.Get(sessionKey(sid)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSession
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var profile models.User
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.client.Expire(sessionKey(sid), s.ttl)
	return &profile, nil
}

func (s *redisSessionStore) Delete(sid string) error {
	return s.client.Del(sessionKey(sid)).Err()
}
