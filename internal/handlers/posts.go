package handlers

import (
	"net/http"

	"newsroom/internal/services"
	"newsroom/internal/views"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	pager
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService, maxPageSize int) *PostHandler {
	return &PostHandler{pager: pager{maxPageSize: maxPageSize}, posts: posts}
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List 最新文章列表
func (h *PostHandler) List(c *gin.Context) {
	page, err := h.posts.List(c.Request.Context(), h.params(c), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":      views.NewPostViews(page.Items),
		"pagination": views.NewPagination(page),
	})
}

func (h *PostHandler) ListMine(c *gin.Context) {
	page, err := h.posts.ListMine(c.Request.Context(), viewer(c), h.params(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":      views.NewPostViews(page.Items),
		"pagination": views.NewPagination(page),
	})
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	page, err := h.posts.ListByUsername(c.Request.Context(), c.Param("slug"), h.params(c), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":      views.NewPostViews(page.Items),
		"pagination": views.NewPagination(page),
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := pathID(c, "postId", services.ResourcePost)
	if !ok {
		return
	}
	detail, err := h.posts.Get(c.Request.Context(), postID, viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": views.NewPostDetailView(detail)})
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	post, err := h.posts.Create(c.Request.Context(), viewer(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": views.NewPostView(*post)})
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := pathID(c, "postId", services.ResourcePost)
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), viewer(c), postID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
