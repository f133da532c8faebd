package controllers

import (
	"net/http"
	"strconv"

	"tuiter/models"

	"github.com/gin-gonic/gin"
)

type TuitController struct {
	tuits TuitService
}

func NewTuitController(tuits TuitService) *TuitController {
	return &TuitController{tuits: tuits}
}

func (tc *TuitController) FindAllTuits(ctx *gin.Context) {
	tuits, err := tc.tuits.FindAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tuits)
}

func (tc *TuitController) FindAllTuitsByUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	tuits, err := tc.tuits.FindByUser(ctx.Request.Context(), uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tuits)
}

func (tc *TuitController) FindTuitById(ctx *gin.Context) {
	tuit, err := tc.tuits.FindByID(ctx.Request.Context(), ctx.Param("tid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tuit)
}

func (tc *TuitController) CreateTuitByUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	var tuit models.Tuit
	if err := ctx.ShouldBindJSON(&tuit); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := tc.tuits.Create(ctx.Request.Context(), uid, &tuit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, created)
}

func (tc *TuitController) UpdateTuit(ctx *gin.Context) {
	var tuit models.Tuit
	if err := ctx.ShouldBindJSON(&tuit); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := tc.tuits.Update(ctx.Request.Context(), ctx.Param("tid"), &tuit); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (tc *TuitController) DeleteTuit(ctx *gin.Context) {
	if err := tc.tuits.Delete(ctx.Request.Context(), ctx.Param("tid")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

type SearchResponse struct {
	Query string        `json:"query"`
	Tuits []models.Tuit `json:"tuits"`
}

// SearchTuits 按关键词检索帖子：GET /api/tuits/search?q=...&limit=...
func (tc *TuitController) SearchTuits(ctx *gin.Context) {
	q := ctx.Query("q")
	if q == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	tuits, err := tc.tuits.Search(ctx.Request.Context(), q, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, SearchResponse{Query: q, Tuits: tuits})
}
