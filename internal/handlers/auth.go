package handlers

import (
	"log/slog"
	"net/http"

	"newsroom/internal/middleware"
	"newsroom/internal/services"
	"newsroom/internal/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type logInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	sess, err := h.auth.SignUp(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, sess)
	c.JSON(http.StatusCreated, gin.H{
		"token": sess.Token,
		"user":  views.NewUserView(sess.User),
	})
}

func (h *AuthHandler) LogIn(c *gin.Context) {
	var req logInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	sess, err := h.auth.LogIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, sess)
	c.JSON(http.StatusOK, gin.H{
		"token": sess.Token,
		"user":  views.NewUserView(sess.User),
	})
}

func (h *AuthHandler) LogOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		slog.Warn("clear session", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// startSession 同时写入 cookie 会话，浏览器客户端无需携带 token
func (h *AuthHandler) startSession(c *gin.Context, sess *services.Session) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, sess.User.ID)
	if err := session.Save(); err != nil {
		slog.Warn("save session", "user_id", sess.User.ID, "error", err)
	}
}
