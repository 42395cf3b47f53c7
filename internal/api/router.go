package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/article-comments-api/internal/config"
	"github.com/article-comments-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, modCfg config.ModerationConfig, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	articleHandler := NewArticleHandler(services, log)
	commentHandler := NewCommentHandler(services, log)

	limiter := newRateLimiter(modCfg)
	authRequired := authMiddleware(services.Auth)

	// Health check
	router.GET("/health", healthCheck)

	// API
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authRequired, authHandler.Logout)
		api.GET("/user", authRequired, authHandler.CurrentUser)

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/:id", articleHandler.Get)
			articles.GET("/:id/comments", commentHandler.List)
			articles.POST("/:id/comments", authRequired, rateLimitMiddleware(limiter), commentHandler.Create)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "article-comments-api",
	})
}
