package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rayspace/blog-service/internal/config"
	"github.com/rayspace/blog-service/internal/model"
	"github.com/rayspace/blog-service/internal/service"
	"go.uber.org/zap"
)

const principalKey = "principal"

type Handler struct {
	logger       *zap.Logger
	services     *service.Service
	clientOrigin string
	session      config.SessionConfig
}

func New(logger *zap.Logger, services *service.Service, clientOrigin string, session config.SessionConfig) *Handler {
	return &Handler{
		logger:       logger,
		services:     services,
		clientOrigin: clientOrigin,
		session:      session,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(h.requestMiddleware)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.clientOrigin},
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(h.sessionMiddleware)

	auth := r.Group("/auth")
	{
		auth.GET("/login", h.authLogin)
		auth.GET("/callback", h.authCallback)
		auth.POST("/logout", h.authLogout)
	}

	api := r.Group("/api")
	{
		api.GET("/user_status", h.userStatus)
		api.GET("/github_stars", h.githubStars)

		posts := api.Group("/posts")
		{
			posts.GET("", h.postsList)
			posts.GET("/:postID", h.postsGetContent)
		}
		api.PUT("/update_views/:postID", h.postsUpdateViews)

		comments := api.Group("/comments")
		{
			comments.GET("", h.commentsGet)
			comments.POST("", h.authMiddleware, h.commentsCreate)
		}

		admin := api.Group("/admin", h.adminMiddleware)
		{
			admin.GET("/posts", h.adminPostsList)
			admin.GET("/posts/orphans", h.adminPostsOrphans)
			admin.GET("/posts/mismatched", h.adminPostsMismatched)
			admin.POST("/posts", h.adminPostsCreate)
			admin.PUT("/posts/:postID", h.adminPostsUpdate)
			admin.DELETE("/posts/:postID", h.adminPostsDelete)
		}
	}

	return r
}

func (h *Handler) getPrincipalFromRequest(c *gin.Context) model.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return model.AnonymousPrincipal()
	}

	principal, ok := value.(model.Principal)
	if !ok {
		return model.AnonymousPrincipal()
	}

	return principal
}
