package controllers

import "tuiter/models"

// DislikeController 提供点踩相关接口：
//
//	GET /api/users/:uid/dislikes        用户点踩过的帖子
//	GET /api/tuits/:tid/dislikes        点踩该帖子的用户
//	PUT /api/users/:uid/dislikes/:tid   切换点踩
//	GET /api/users/:uid/dislikes/:tid   用户是否点踩了该帖子
type DislikeController struct {
	reactionController
}

func NewDislikeController(reactions ReactionService) *DislikeController {
	return &DislikeController{reactionController{
		reactions: reactions,
		kind:      models.KindDislike,
		toggle:    reactions.ToggleDislike,
	}}
}
