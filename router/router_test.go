package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tuiter/auth"
	"tuiter/controllers"
	"tuiter/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type noSessions struct{}

func (noSessions) Create(*models.User) (string, error) { return "", nil }
func (noSessions) Get(string) (*models.User, error) { return nil, auth.ErrNoSession }
func (noSessions) Delete(string) error { return nil }

type stubReactions struct {
	toggles int
}

func (s *stubReactions) ToggleLike(ctx context.Context, uid, tid string) error {
	s.toggles++
	return nil
}
func (s *stubReactions) ToggleDislike(ctx context.Context, uid, tid string) error {
	s.toggles++
	return nil
}
func (s *stubReactions) UserReacted(context.Context, models.ReactionKind, string, string) (bool, error) {
	return false, nil
}
func (s *stubReactions) Count(context.Context, models.ReactionKind, string) (int, error) {
	return 0, nil
}
func (s *stubReactions) TuitsReactedByUser(context.Context, models.ReactionKind, string) ([]models.Tuit, error) {
	return nil, nil
}
func (s *stubReactions) UsersThatReacted(context.Context, models.ReactionKind, string) ([]models.User, error) {
	return nil, nil
}

// reactionControllers wires only the reaction controllers; handlers of the
// others are never invoked here.
func reactionControllers(reactions controllers.ReactionService) Controllers {
	return Controllers{
		Likes:    controllers.NewLikeController(reactions, nil),
		Dislikes: controllers.NewDislikeController(reactions),
	}
}

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reactions := &stubReactions{}
	r := SetupRouter(Options{CorsOrigin: "http://localhost:3000", JwtSecret: "s", Sessions: noSessions{}}, reactionControllers(reactions))

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, k := range []string{
		"PUT /api/users/:uid/dislikes/:tid",
		"GET /api/users/:uid/dislikes/:tid",
		"GET /api/users/:uid/dislikes",
		"GET /api/tuits/:tid/dislikes",
		"PUT /api/users/:uid/likes/:tid",
		"GET /api/tuits/top",
		"GET /api/tuits/search",
		"POST /api/users/:uid/messages/:auid",
	} {
		if !registered[k] {
			t.Fatalf("route %s not registered", k)
		}
	}

	w := httptest.NewRecorder()
	path := "/api/users/" + primitive.NewObjectID().Hex() + "/dislikes/" + primitive.NewObjectID().Hex()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, nil))
	if w.Code != http.StatusOK || reactions.toggles != 1 {
		t.Fatalf("status %d toggles %d", w.Code, reactions.toggles)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/users/me/dislikes/"+primitive.NewObjectID().Hex(), nil))
	if w.Code != http.StatusForbidden || reactions.toggles != 1 {
		t.Fatalf("anonymous me: status %d toggles %d", w.Code, reactions.toggles)
	}
}

func TestCors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := SetupRouter(Options{CorsOrigin: "http://localhost:3000", Sessions: noSessions{}}, reactionControllers(&stubReactions{}))

	req := httptest.NewRequest(http.MethodOptions, "/api/tuits", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials = %q", got)
	}
}
