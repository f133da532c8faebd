package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"tuiter/daos"
	"tuiter/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeMessages struct {
	call    string
	uid     string
	from    string
	to      string
	text    string
	msgs    []models.Message
	deleted int64
	err     error
}

func (f *fakeMessages) FindAll(ctx context.Context) ([]models.Message, error) {
	f.call = "all"
	return f.msgs, f.err
}

func (f *fakeMessages) FindSent(ctx context.Context, uid string) ([]models.Message, error) {
	f.call, f.uid = "sent", uid
	return f.msgs, f.err
}

func (f *fakeMessages) FindReceived(ctx context.Context, uid string) ([]models.Message, error) {
	f.call, f.uid = "received", uid
	return f.msgs, f.err
}

func (f *fakeMessages) FindByID(ctx context.Context, mid string) (*models.Message, error) {
	f.call = "by id"
	if f.err != nil {
		return nil, f.err
	}
	return &f.msgs[0], nil
}

func (f *fakeMessages) Create(ctx context.Context, from, to string, msg *models.Message) (*models.Message, error) {
	f.call, f.from, f.to, f.text = "create", from, to, msg.Message
	if f.err != nil {
		return nil, f.err
	}
	return msg, nil
}

func (f *fakeMessages) Update(ctx context.Context, mid string, msg *models.Message) error {
	f.call, f.text = "update", msg.Message
	return f.err
}

func (f *fakeMessages) Delete(ctx context.Context, mid string) (int64, error) {
	f.call = "delete"
	return f.deleted, f.err
}

func (f *fakeMessages) DeleteAllSent(ctx context.Context, uid string) (int64, error) {
	f.call, f.uid = "delete sent", uid
	return f.deleted, f.err
}

func (f *fakeMessages) DeleteAllReceived(ctx context.Context, uid string) (int64, error) {
	f.call, f.uid = "delete received", uid
	return f.deleted, f.err
}

func messageEngine(messages daos.MessageDao, sessions fakeSessions) *gin.Engine {
	r := newEngine(sessions)
	mc := NewMessageController(messages)
	r.GET("/api/messages", mc.FindAllMessages)
	r.GET("/api/messages/:mid", mc.FindMessageById)
	r.PUT("/api/messages/:mid", mc.UpdateMessage)
	r.DELETE("/api/messages/:mid", mc.DeleteMessage)
	r.GET("/api/users/:uid/messages", mc.FindMessagesSent)
	r.GET("/api/users/:uid/messages/sent", mc.FindMessagesSent)
	r.GET("/api/users/:uid/messages/received", mc.FindMessagesReceived)
	r.POST("/api/users/:uid/messages", mc.CreateMessageByUser)
	r.POST("/api/users/:uid/messages/:auid", mc.UserSendsMessage)
	r.DELETE("/api/users/:uid/messages/sent", mc.DeleteAllSent)
	r.DELETE("/api/users/:uid/messages/received", mc.DeleteAllReceived)
	return r
}

func TestMessageController_Send(t *testing.T) {
	alice := &models.User{ID: primitive.NewObjectID(), Username: "alice"}
	bob, carol := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	cases := []struct {
		name       string
		path       string
		body       string
		sid        string
		wantStatus int
		wantTo     string
	}{
		{"recipient from body", "/api/users/me/messages", `{"message":"hi","to":"` + bob + `"}`, "s1", http.StatusOK, bob},
		{"recipient from path wins", "/api/users/me/messages/" + carol, `{"message":"hi","to":"` + bob + `"}`, "s1", http.StatusOK, carol},
		{"path recipient without body to", "/api/users/me/messages/" + carol, `{"message":"hi"}`, "s1", http.StatusOK, carol},
		{"empty message", "/api/users/me/messages", `{"to":"` + bob + `"}`, "s1", http.StatusBadRequest, ""},
		{"me without session", "/api/users/me/messages/" + carol, `{"message":"hi"}`, "", http.StatusForbidden, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fake := &fakeMessages{}
			r := messageEngine(fake, fakeSessions{"s1": alice})

			w := serve(r, http.MethodPost, c.path, c.body, c.sid)
			if w.Code != c.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, c.wantStatus, w.Body.String())
			}
			if c.wantTo == "" {
				if fake.call != "" {
					t.Fatalf("nothing should be stored, got %q", fake.call)
				}
				return
			}
			if fake.from != alice.ID.Hex() || fake.to != c.wantTo || fake.text != "hi" {
				t.Fatalf("sent %s -> %s %q", fake.from, fake.to, fake.text)
			}
		})
	}
}

func TestMessageController_UserScopedRoutes(t *testing.T) {
	alice := &models.User{ID: primitive.NewObjectID(), Username: "alice"}
	cases := []struct {
		method   string
		path     string
		wantCall string
	}{
		{http.MethodGet, "/api/users/me/messages", "sent"},
		{http.MethodGet, "/api/users/me/messages/sent", "sent"},
		{http.MethodGet, "/api/users/me/messages/received", "received"},
		{http.MethodDelete, "/api/users/me/messages/sent", "delete sent"},
		{http.MethodDelete, "/api/users/me/messages/received", "delete received"},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			fake := &fakeMessages{deleted: 4, msgs: []models.Message{}}
			w := serve(messageEngine(fake, fakeSessions{"s1": alice}), c.method, c.path, "", "s1")
			if w.Code != http.StatusOK {
				t.Fatalf("status %d: %s", w.Code, w.Body.String())
			}
			if fake.call != c.wantCall || fake.uid != alice.ID.Hex() {
				t.Fatalf("called %q for %q", fake.call, fake.uid)
			}
			if c.method == http.MethodDelete {
				var body struct {
					DeletedCount int64 `json:"deletedCount"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.DeletedCount != 4 {
					t.Fatalf("body %s", w.Body.String())
				}
			}
		})
	}
}

func TestMessageController_ByID(t *testing.T) {
	mid := primitive.NewObjectID().Hex()
	cases := []struct {
		name   string
		method string
		body   string
		err    error
		status int
	}{
		{"get", http.MethodGet, "", nil, http.StatusOK},
		{"get missing", http.MethodGet, "", daos.ErrNotFound, http.StatusNotFound},
		{"update", http.MethodPut, `{"message":"edited"}`, nil, http.StatusOK},
		{"update without text", http.MethodPut, `{}`, nil, http.StatusBadRequest},
		{"update missing", http.MethodPut, `{"message":"edited"}`, daos.ErrNotFound, http.StatusNotFound},
		{"delete", http.MethodDelete, "", nil, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fake := &fakeMessages{err: c.err, msgs: []models.Message{{Message: "hi"}}}
			w := serve(messageEngine(fake, fakeSessions{}), c.method, "/api/messages/"+mid, c.body, "")
			if w.Code != c.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, c.status, w.Body.String())
			}
			if c.name == "update" && fake.text != "edited" {
				t.Fatalf("updated text %q", fake.text)
			}
		})
	}
}
