package controllers

import (
	"context"
	"log"
	"net/http"

	"tuiter/models"

	"github.com/gin-gonic/gin"
)

// reactionController 实现点赞/点踩两类互斥反应共用的接口
type reactionController struct {
	reactions ReactionService
	kind      models.ReactionKind
	toggle    func(ctx context.Context, uid, tid string) error
}

// Toggle 切换反应状态。任何失败（帖子不存在或存储错误）统一返回 404，错误信息放在响应体中
func (rc *reactionController) Toggle(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	tid := ctx.Param("tid")

	if err := rc.toggle(ctx.Request.Context(), uid, tid); err != nil {
		log.Printf("user %s toggles %s on tuit %s: %v", uid, rc.kind, tid, err)
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusOK)
}

// Check 返回用户当前是否持有该反应
func (rc *reactionController) Check(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	reacted, err := rc.reactions.UserReacted(ctx.Request.Context(), rc.kind, uid, ctx.Param("tid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reacted)
}

func (rc *reactionController) FindTuitsByUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	tuits, err := rc.reactions.TuitsReactedByUser(ctx.Request.Context(), rc.kind, uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tuits)
}

func (rc *reactionController) FindUsersByTuit(ctx *gin.Context) {
	users, err := rc.reactions.UsersThatReacted(ctx.Request.Context(), rc.kind, ctx.Param("tid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (rc *reactionController) Count(ctx *gin.Context) {
	n, err := rc.reactions.Count(ctx.Request.Context(), rc.kind, ctx.Param("tid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": n})
}
