package middleware

import (
	"errors"
	"log"
	"strings"

	"tuiter/auth"
	"tuiter/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SessionCookie = "tuiter.sid"
	profileKey    = "profile"
	sessionIDKey  = "sid"
)

// Session 从会话 cookie 或 Bearer JWT 中解析当前用户，解析不到时不拦截请求
func Session(store auth.SessionStore, jwtSecret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if sid, err := ctx.Cookie(SessionCookie); err == nil && sid != "" {
			profile, err := store.Get(sid)
			switch {
			case err == nil:
				ctx.Set(profileKey, profile)
				ctx.Set(sessionIDKey, sid)
			case !errors.Is(err, auth.ErrNoSession):
				log.Printf("session lookup: %v", err)
			}
		}

		if _, ok := ctx.Get(profileKey); !ok {
			if token := bearerToken(ctx); token != "" {
				if claims, err := auth.ParseJWT(jwtSecret, token); err == nil {
					if oid, err := primitive.ObjectIDFromHex(claims.Subject); err == nil {
						ctx.Set(profileKey, &models.User{ID: oid, Username: claims.Username})
					}
				}
			}
		}

		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	h := ctx.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Profile returns the caller's profile, or nil for anonymous requests.
func Profile(ctx *gin.Context) *models.User {
	v, ok := ctx.Get(profileKey)
	if !ok {
		return nil
	}
	profile, _ := v.(*models.User)
	return profile
}

func SessionID(ctx *gin.Context) string {
	return ctx.GetString(sessionIDKey)
}
