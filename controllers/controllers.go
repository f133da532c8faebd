package controllers

import (
	"context"
	"errors"
	"net/http"

	"tuiter/auth"
	"tuiter/daos"
	"tuiter/middleware"
	"tuiter/models"
	"tuiter/services"

	"github.com/gin-gonic/gin"
)

type ReactionService interface {
	ToggleLike(ctx context.Context, uid, tid string) error
	ToggleDislike(ctx context.Context, uid, tid string) error
	UserReacted(ctx context.Context, kind models.ReactionKind, uid, tid string) (bool, error)
	Count(ctx context.Context, kind models.ReactionKind, tid string) (int, error)
	TuitsReactedByUser(ctx context.Context, kind models.ReactionKind, uid string) ([]models.Tuit, error)
	UsersThatReacted(ctx context.Context, kind models.ReactionKind, tid string) ([]models.User, error)
}

type TuitService interface {
	FindAll(ctx context.Context) ([]models.Tuit, error)
	FindByUser(ctx context.Context, uid string) ([]models.Tuit, error)
	FindByID(ctx context.Context, tid string) (*models.Tuit, error)
	Create(ctx context.Context, uid string, tuit *models.Tuit) (*models.Tuit, error)
	Update(ctx context.Context, tid string, tuit *models.Tuit) error
	Delete(ctx context.Context, tid string) error
	Search(ctx context.Context, query string, limit int) ([]models.Tuit, error)
	Top(ctx context.Context, kind models.ReactionKind, n int) ([]services.RankEntry, error)
}

type UserService interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, creds models.Credentials) (*models.User, error)
	Update(ctx context.Context, uid string, user *models.User, password string) error
	Delete(ctx context.Context, uid string) error
	Signup(ctx context.Context, creds models.Credentials) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
}

// resolveUser 解析路径参数中的用户，"me" 表示当前会话用户；失败时已写回 403
func resolveUser(ctx *gin.Context, param string) (string, bool) {
	uid, err := auth.ParseCaller(ctx.Param(param)).Resolve(middleware.Profile(ctx))
	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return "", false
	}
	return uid, true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, daos.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, daos.ErrDuplicate), errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusForbidden
	case errors.Is(err, services.ErrEmptyTuit):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(ctx *gin.Context, err error) {
	ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
}

// deleteStatus mirrors the store's delete result in the response body.
func deleteStatus(ctx *gin.Context, deleted int64, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
