package auth

import (
	"errors"
	"testing"
	"time"

	"tuiter/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseCaller(t *testing.T) {
	owner := &models.User{ID: primitive.NewObjectID(), Username: "alice"}
	literal := primitive.NewObjectID().Hex()

	cases := []struct {
		name    string
		segment string
		profile *models.User
		want    string
		wantErr error
	}{
		{"literal id ignores session", literal, owner, literal, nil},
		{"literal id without session", literal, nil, literal, nil},
		{"me resolves to session owner", "me", owner, owner.ID.Hex(), nil},
		{"me without session", "me", nil, "", ErrUnauthenticated},
		{"me with empty profile", "me", &models.User{}, "", ErrUnauthenticated},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseCaller(c.segment).Resolve(c.profile)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}
			if got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !CheckPassword(hash, "super-secret") {
		t.Fatalf("check failed for the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected failure for wrong password")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	uid := primitive.NewObjectID().Hex()
	token, err := GenerateJWT("s3cret", uid, "alice", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT("s3cret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != uid || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := ParseJWT("other", token); err == nil {
		t.Fatalf("expected signature failure with another secret")
	}

	expired, _ := GenerateJWT("s3cret", uid, "alice", -time.Minute)
	if _, err := ParseJWT("s3cret", expired); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisSessionStore(client, time.Hour)
	profile := &models.User{ID: primitive.NewObjectID(), Username: "alice", Password: "hash"}

	sid, err := store.Create(profile)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if mr.TTL(sessionKey(sid)) != time.Hour {
		t.Fatalf("ttl = %v", mr.TTL(sessionKey(sid)))
	}

	got, err := store.Get(sid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != profile.ID || got.Username != "alice" {
		t.Fatalf("profile = %+v", got)
	}
	if got.Password != "" {
		t.Fatalf("password hash leaked into the session")
	}

	if err := store.Delete(sid); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(sid); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after delete, got %v", err)
	}
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisSessionStore(client, time.Minute)
	sid, err := store.Create(&models.User{ID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(sid); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected expired session, got %v", err)
	}
	if _, err := store.Get(""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("empty sid should have no session, got %v", err)
	}
}
