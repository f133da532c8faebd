package controllers

import (
	"net/http"

	"tuiter/models"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users UserService
}

func NewUserController(users UserService) *UserController {
	return &UserController{users: users}
}

func (uc *UserController) FindAllUsers(ctx *gin.Context) {
	users, err := uc.users.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (uc *UserController) FindUserById(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	user, err := uc.users.FindByID(ctx.Request.Context(), uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (uc *UserController) CreateUser(ctx *gin.Context) {
	var creds models.Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := uc.users.Create(ctx.Request.Context(), creds)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	models.User
	Password string `json:"password"`
}

func (uc *UserController) UpdateUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := uc.users.Update(ctx.Request.Context(), uid, &req.User, req.Password); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (uc *UserController) DeleteUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	if err := uc.users.Delete(ctx.Request.Context(), uid); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}
