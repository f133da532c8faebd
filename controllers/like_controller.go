package controllers

import (
	"net/http"
	"strconv"

	"tuiter/models"

	"github.com/gin-gonic/gin"
)

// LikeController 提供点赞相关接口，以及按点赞/点踩数的帖子排行
type LikeController struct {
	reactionController
	tuits TuitService
}

func NewLikeController(reactions ReactionService, tuits TuitService) *LikeController {
	return &LikeController{
		reactionController: reactionController{
			reactions: reactions,
			kind:      models.KindLike,
			toggle:    reactions.ToggleLike,
		},
		tuits: tuits,
	}
}

// GetTopTuits: 返回 Top N 排行（从 Redis ZSET 获取，并尝试附上帖子内容）
func (lc *LikeController) GetTopTuits(ctx *gin.Context) {
	topStr := ctx.DefaultQuery("top", "10")
	top, err := strconv.Atoi(topStr)
	if err != nil || top <= 0 {
		top = 10
	}
	if top > 100 {
		top = 100
	}

	kind := models.KindLike
	if ctx.Query("by") == "dislikes" {
		kind = models.KindDislike
	}

	list, err := lc.tuits.Top(ctx.Request.Context(), kind, top)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"by": kind, "list": list})
}
