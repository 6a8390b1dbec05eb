package handlers

import (
	"net/http"

	"newsroom/internal/services"
	"newsroom/internal/views"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	pager
	likes *services.LikeService
}

func NewLikeHandler(likes *services.LikeService, maxPageSize int) *LikeHandler {
	return &LikeHandler{pager: pager{maxPageSize: maxPageSize}, likes: likes}
}

func (h *LikeHandler) ListOnPost(c *gin.Context) {
	postID, ok := pathID(c, "postId", services.ResourcePost)
	if !ok {
		return
	}
	page, err := h.likes.ListOnPost(c.Request.Context(), postID, h.params(c), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"likes":         views.NewLikeViews(page.Items),
		"likedByViewer": page.LikedByViewer,
		"pagination":    views.NewPagination(page.Page),
	})
}

func (h *LikeHandler) ListMine(c *gin.Context) {
	page, err := h.likes.ListMine(c.Request.Context(), viewer(c), h.params(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"likes":      views.NewLikeViews(page.Items),
		"pagination": views.NewPagination(page),
	})
}

func (h *LikeHandler) ListByUser(c *gin.Context) {
	page, err := h.likes.ListByUsername(c.Request.Context(), c.Param("slug"), h.params(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"likes":      views.NewLikeViews(page.Items),
		"pagination": views.NewPagination(page),
	})
}

func (h *LikeHandler) Create(c *gin.Context) {
	postID, ok := pathID(c, "postId", services.ResourcePost)
	if !ok {
		return
	}
	like, err := h.likes.Create(c.Request.Context(), viewer(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"like": gin.H{
		"id":        like.ID,
		"postId":    like.PostID,
		"createdAt": like.CreatedAt,
	}})
}

// Unlike removes the caller's like on a post.
func (h *LikeHandler) Unlike(c *gin.Context) {
	postID, ok := pathID(c, "postId", services.ResourcePost)
	if !ok {
		return
	}
	if err := h.likes.Delete(c.Request.Context(), viewer(c), postID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like removed"})
}

func (h *LikeHandler) Delete(c *gin.Context) {
	likeID, ok := pathID(c, "likeId", services.ResourceLike)
	if !ok {
		return
	}
	if err := h.likes.DeleteByID(c.Request.Context(), viewer(c), likeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like removed"})
}
