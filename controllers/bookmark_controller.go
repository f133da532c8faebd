package controllers

import (
	"net/http"

	"tuiter/daos"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct {
	bookmarks daos.BookmarkDao
}

func NewBookmarkController(bookmarks daos.BookmarkDao) *BookmarkController {
	return &BookmarkController{bookmarks: bookmarks}
}

func (bc *BookmarkController) FindAllTuitsBookmarkedByUser(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	bookmarks, err := bc.bookmarks.FindByUser(ctx.Request.Context(), uid)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookmarks)
}

func (bc *BookmarkController) FindAllUsersThatBookmarkedTuit(ctx *gin.Context) {
	bookmarks, err := bc.bookmarks.FindByTuit(ctx.Request.Context(), ctx.Param("tid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookmarks)
}

func (bc *BookmarkController) FindUserBookmarksTuit(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	bookmarks, err := bc.bookmarks.Find(ctx.Request.Context(), uid, ctx.Param("tid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookmarks)
}

func (bc *BookmarkController) UserBookmarksTuit(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	bookmark, err := bc.bookmarks.Create(ctx.Request.Context(), uid, ctx.Param("tid"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bookmark)
}

func (bc *BookmarkController) UserUnbookmarksTuit(ctx *gin.Context) {
	uid, ok := resolveUser(ctx, "uid")
	if !ok {
		return
	}
	n, err := bc.bookmarks.Delete(ctx.Request.Context(), uid, ctx.Param("tid"))
	deleteStatus(ctx, n, err)
}
