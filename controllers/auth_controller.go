package controllers

import (
	"log"
	"net/http"
	"time"

	"tuiter/auth"
	"tuiter/middleware"
	"tuiter/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users      UserService
	sessions   auth.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	secure     bool
}

func NewAuthController(users UserService, sessions auth.SessionStore, jwtSecret string, sessionTTL time.Duration, secure bool) *AuthController {
	return &AuthController{
		users:      users,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		secure:     secure,
	}
}

type authResponse struct {
	Profile *models.User `json:"profile"`
	Token   string       `json:"token"`
}

func (ac *AuthController) Signup(ctx *gin.Context) {
	var creds models.Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := ac.users.Signup(ctx.Request.Context(), creds)
	if err != nil {
		// 用户名已存在时与原接口保持一致返回 403
		status := statusOf(err)
		if status == http.StatusConflict {
			status = http.StatusForbidden
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	ac.startSession(ctx, user)
}

func (ac *AuthController) Login(ctx *gin.Context) {
	var creds models.Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := ac.users.Login(ctx.Request.Context(), creds)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ac.startSession(ctx, user)
}

func (ac *AuthController) startSession(ctx *gin.Context, user *models.User) {
	sid, err := ac.sessions.Create(user)
	if err != nil {
		respondError(ctx, err)
		return
	}
	token, err := auth.GenerateJWT(ac.jwtSecret, user.ID.Hex(), user.Username, ac.sessionTTL)
	if err != nil {
		respondError(ctx, err)
		return
	}
	sameSite := http.SameSiteLaxMode
	if ac.secure {
		sameSite = http.SameSiteNoneMode
	}
	ctx.SetSameSite(sameSite)
	ctx.SetCookie(middleware.SessionCookie, sid, int(ac.sessionTTL.Seconds()), "/", "", ac.secure, true)
	ctx.JSON(http.StatusOK, authResponse{Profile: user, Token: token})
}

func (ac *AuthController) Profile(ctx *gin.Context) {
	profile := middleware.Profile(ctx)
	if profile == nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": auth.ErrUnauthenticated.Error()})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

func (ac *AuthController) Logout(ctx *gin.Context) {
	if sid := middleware.SessionID(ctx); sid != "" {
		if err := ac.sessions.Delete(sid); err != nil {
			log.Printf("logout: %v", err)
		}
	}
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secure, true)
	ctx.Status(http.StatusOK)
}
