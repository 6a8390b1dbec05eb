package handlers

import (
	"net/http"

	"newsroom/internal/models"
	"newsroom/internal/services"
	"newsroom/internal/views"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	pager
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService, maxPageSize int) *CommentHandler {
	return &CommentHandler{pager: pager{maxPageSize: maxPageSize}, comments: comments}
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) respondPage(c *gin.Context, page services.Page[models.Comment], err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"comments":   views.NewCommentViews(page.Items),
		"pagination": views.NewPagination(page),
	})
}

func (h *CommentHandler) ListAll(c *gin.Context) {
	page, err := h.comments.ListAll(c.Request.Context(), h.params(c))
	h.respondPage(c, page, err)
}

func (h *CommentHandler) ListOnPost(c *gin.Context) {
	postID, ok := pathID(c, "postId", services.ResourcePost)
	if !ok {
		return
	}
	page, err := h.comments.ListOnPost(c.Request.Context(), postID, h.params(c))
	h.respondPage(c, page, err)
}

func (h *CommentHandler) ListMine(c *gin.Context) {
	page, err := h.comments.ListMine(c.Request.Context(), viewer(c), h.params(c))
	h.respondPage(c, page, err)
}

func (h *CommentHandler) ListByUser(c *gin.Context) {
	page, err := h.comments.ListByUsername(c.Request.Context(), c.Param("slug"), h.params(c))
	h.respondPage(c, page, err)
}

func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := pathID(c, "postId", services.ResourcePost)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), viewer(c), postID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": views.NewCommentView(*comment)})
}

func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "commentId", services.ResourceComment)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	comment, err := h.comments.Update(c.Request.Context(), viewer(c), commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": views.NewCommentView(*comment)})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "commentId", services.ResourceComment)
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), viewer(c), commentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
