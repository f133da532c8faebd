package controllers

import (
	"net/http"

	"tuiter/daos"
	"tuiter/models"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	messages daos.MessageDao
}

func NewMessageController(messages daos.MessageDao) *MessageController {
	return &MessageController{messages: messages}
}

type messageRequest struct {
	Message string `json:"message" binding:"required"`
	To      string `json:"to"`
}

func (mc *MessageController) FindAllMessages(ctx *gin.Context) {
	msgs, err := mc.messages.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, msgs)
}

// FindMessagesSent 也服务于 GET /api/users/:uid/messages
func (mc *MessageController) FindMessagesSent(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	msgs, err := mc.messages.FindSent(ctx.Request.Context(), uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, msgs)
}

func (mc *MessageController) FindMessagesReceived(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	msgs, err := mc.messages.FindReceived(ctx.Request.Context(), uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, msgs)
}

func (mc *MessageController) FindMessageById(ctx *gin.Context) {
	msg, err := mc.messages.FindByID(ctx.Request.Context(), ctx.Param("mid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, msg)
}

// CreateMessageByUser: POST /api/users/:uid/messages，收件人在请求体的 to 字段
func (mc *MessageController) CreateMessageByUser(ctx *gin.Context) {
	var req messageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mc.send(ctx, req.To, req.Message)
}

// UserSendsMessage: POST /api/users/:uid/messages/:auid
func (mc *MessageController) UserSendsMessage(ctx *gin.Context) {
	var req messageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mc.send(ctx, ctx.Param("auid"), req.Message)
}

func (mc *MessageController) send(ctx *gin.Context, to, text string) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	msg, err := mc.messages.Create(ctx.Request.Context(), uid, to, &models.Message{Message: text})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, msg)
}

func (mc *MessageController) UpdateMessage(ctx *gin.Context) {
	var req messageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := mc.messages.Update(ctx.Request.Context(), ctx.Param("mid"), &models.Message{Message: req.Message}); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (mc *MessageController) DeleteMessage(ctx *gin.Context) {
	n, err := mc.messages.Delete(ctx.Request.Context(), ctx.Param("mid"))
	deleteStatus(ctx, n, err)
}

func (mc *MessageController) DeleteAllSent(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	n, err := mc.messages.DeleteAllSent(ctx.Request.Context(), uid)
	deleteStatus(ctx, n, err)
}

func (mc *MessageController) DeleteAllReceived(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	n, err := mc.messages.DeleteAllReceived(ctx.Request.Context(), uid)
	deleteStatus(ctx, n, err)
}
