package router

import (
	"newsroom/internal/config"
	"newsroom/internal/handlers"
	"newsroom/internal/middleware"
	"newsroom/internal/services"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionName = "newsroom_session"

// New builds the engine with the full middleware chain and route table.
func New(cfg config.Config, conn *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	tokens := services.NewTokens(cfg.JWTSecretKey, cfg.TokenIssuer, cfg.TokenTTL)
	r.Use(middleware.LoadUser(tokens))

	RegisterRoutes(r, cfg, conn, tokens)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg config.Config, conn *gorm.DB, tokens *services.Tokens) {
	// Handlers
	authHandler := handlers.NewAuthHandler(services.NewAuthService(conn, tokens))
	userHandler := handlers.NewUserHandler(services.NewUserService(conn), cfg.MaxPageSize)
	postHandler := handlers.NewPostHandler(services.NewPostService(conn, cfg.MaxPageSize), cfg.MaxPageSize)
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(conn), cfg.MaxPageSize)
	likeHandler := handlers.NewLikeHandler(services.NewLikeService(conn), cfg.MaxPageSize)
	healthHandler := handlers.NewHealthHandler(conn)

	requireAuth := middleware.AuthRequired()

	r.GET("/healthz", healthHandler.Check)

	// 认证
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", authHandler.SignUp)
		auth.POST("/log-in", authHandler.LogIn)
		auth.POST("/log-out", authHandler.LogOut)
	}

	users := r.Group("/users", requireAuth)
	{
		users.GET("", userHandler.List)
		users.GET("/me", userHandler.Me)
		users.POST("/me", userHandler.UpdateAbout)
		users.GET("/:id", userHandler.Profile)
	}

	// 文章
	posts := r.Group("/posts")
	{
		posts.GET("", postHandler.List)
		posts.GET("/me", requireAuth, postHandler.ListMine)
		posts.POST("", requireAuth, postHandler.Create)
		posts.GET("/by/:slug", postHandler.ListByUser)
		posts.GET("/:postId", postHandler.Detail)
		posts.DELETE("/:postId", requireAuth, postHandler.Delete)
	}

	// 评论
	comments := r.Group("/comments")
	{
		comments.GET("", commentHandler.ListAll)
		comments.GET("/me", requireAuth, commentHandler.ListMine)
		comments.GET("/by/:slug", commentHandler.ListByUser)
		comments.GET("/on/:postId", commentHandler.ListOnPost)
		comments.POST("/on/:postId", requireAuth, commentHandler.Create)
		comments.PATCH("/:commentId", requireAuth, commentHandler.Update)
		comments.DELETE("/:commentId", requireAuth, commentHandler.Delete)
	}

	// 点赞
	likes := r.Group("/likes")
	{
		likes.GET("/me", requireAuth, likeHandler.ListMine)
		likes.GET("/by/:slug", likeHandler.ListByUser)
		likes.GET("/on/:postId", likeHandler.ListOnPost)
		likes.POST("/on/:postId", requireAuth, likeHandler.Create)
		likes.DELETE("/on/:postId", requireAuth, likeHandler.Unlike)
		likes.DELETE("/:likeId", requireAuth, likeHandler.Delete)
	}
}
