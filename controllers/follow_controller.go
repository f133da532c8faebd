package controllers

import (
	"net/http"

	"tuiter/daos"

	"github.com/gin-gonic/gin"
)

type FollowController struct {
	follows daos.FollowDao
}

func NewFollowController(follows daos.FollowDao) *FollowController {
	return &FollowController{follows: follows}
}

// FindAllFollowingUser 返回 uid 关注的用户
func (fc *FollowController) FindAllFollowingUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	follows, err := fc.follows.FindFollowing(ctx.Request.Context(), uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, follows)
}

// FindAllFollowedUser 返回关注 uid 的用户
func (fc *FollowController) FindAllFollowedUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	follows, err := fc.follows.FindFollowers(ctx.Request.Context(), uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, follows)
}

func (fc *FollowController) UserFollowsAnotherUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	auid := ctx.Param("auid")
	if auid == uid {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "users cannot follow themselves"})
		return
	}
	follow, err := fc.follows.Create(ctx.Request.Context(), uid, auid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, follow)
}

func (fc *FollowController) UserUnfollowsAnotherUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	n, err := fc.follows.Delete(ctx.Request.Context(), uid, ctx.Param("auid"))
	deleteStatus(ctx, n, err)
}

func (fc *FollowController) UserRemoveAllFollower(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	n, err := fc.follows.DeleteAllFollowers(ctx.Request.Context(), uid)
	deleteStatus(ctx, n, err)
}

func (fc *FollowController) UserRemoveAllFollowing(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	n, err := fc.follows.DeleteAllFollowing(ctx.Request.Context(), uid)
	deleteStatus(ctx, n, err)
}
