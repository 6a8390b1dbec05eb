package handlers

import (
	"net/http"

	"newsroom/internal/services"
	"newsroom/internal/views"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	pager
	users *services.UserService
}

func NewUserHandler(users *services.UserService, maxPageSize int) *UserHandler {
	return &UserHandler{pager: pager{maxPageSize: maxPageSize}, users: users}
}

type updateAboutRequest struct {
	About string `json:"about"`
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := h.users.List(c.Request.Context(), h.params(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":      views.NewUserViews(page.Items),
		"pagination": views.NewPagination(page),
	})
}

// Me 当前登录用户的资料
func (h *UserHandler) Me(c *gin.Context) {
	profile, err := h.users.Me(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": views.NewProfileView(profile)})
}

func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := pathID(c, "id", services.ResourceUser)
	if !ok {
		return
	}
	profile, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": views.NewProfileView(profile)})
}

func (h *UserHandler) UpdateAbout(c *gin.Context) {
	var req updateAboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	user, err := h.users.UpdateAbout(c.Request.Context(), viewer(c), req.About)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": views.NewUserView(*user)})
}
