// internal/app/router.go
package app

import (
	aiHandler "journal-service/internal/handlers/ai"
	analyticsHandler "journal-service/internal/handlers/analytics"
	authHandler "journal-service/internal/handlers/auth"
	entryHandler "journal-service/internal/handlers/entry"
	searchHandler "journal-service/internal/handlers/search"
	userHandler "journal-service/internal/handlers/user"
	"journal-service/internal/middleware"
	"journal-service/internal/websocket"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	EntryHandler     *entryHandler.EntryHandler
	UserHandler      *userHandler.UserHandler
	AnalyticsHandler *analyticsHandler.AnalyticsHandler
	SearchHandler    *searchHandler.SearchHandler
	AIHandler        *aiHandler.AIHandler
	ChatHandler      *websocket.ChatHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws/ai/chat", h.ChatHandler.Handle)

	api := r.Group("/api/v1")

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.POST("/refresh", h.AuthHandler.Refresh)
		authPublic.POST("/forgot-password", h.AuthHandler.ForgotPassword)
		authPublic.POST("/reset-password", h.AuthHandler.ResetPassword)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.DELETE("/account", h.AuthHandler.DeleteAccount)
	}

	// ==================== Entries ====================
	entries := api.Group("/entries")
	entries.Use(h.AuthMiddleware.Auth())
	{
		entries.POST("", h.EntryHandler.Create)
		entries.GET("", h.EntryHandler.List)
		entries.GET("/drafts", h.EntryHandler.Drafts)
		entries.GET("/favorites", h.EntryHandler.Favorites)
		entries.GET("/calendar", h.EntryHandler.Calendar)
		entries.GET("/on-this-day", h.EntryHandler.OnThisDay)
		entries.GET("/:id", h.EntryHandler.Get)
		entries.PUT("/:id", h.EntryHandler.Update)
		entries.PATCH("/:id", h.EntryHandler.Update)
		entries.DELETE("/:id", h.EntryHandler.Delete)
		entries.POST("/:id/favorite", h.EntryHandler.Favorite)
		entries.DELETE("/:id/favorite", h.EntryHandler.Unfavorite)
	}

	// ==================== User ====================
	user := api.Group("/user")
	user.Use(h.AuthMiddleware.Auth())
	{
		user.GET("/profile", h.UserHandler.GetProfile)
		user.PUT("/profile", h.UserHandler.UpdateProfile)
		user.GET("/preferences", h.UserHandler.GetPreferences)
		user.PUT("/preferences", h.UserHandler.UpdatePreferences)
		user.GET("/stats", h.UserHandler.GetStats)
	}

	// ==================== Search ====================
	search := api.Group("/search")
	search.Use(h.AuthMiddleware.Auth())
	{
		search.GET("", h.SearchHandler.Search)
		search.GET("/suggestions", h.SearchHandler.Suggestions)
	}

	// ==================== Analytics ====================
	analytics := api.Group("/analytics")
	analytics.Use(h.AuthMiddleware.Auth())
	{
		analytics.GET("/mood-trends", h.AnalyticsHandler.MoodTrends)
		analytics.GET("/writing-stats", h.AnalyticsHandler.WritingStats)
		analytics.GET("/streaks", h.AnalyticsHandler.Streaks)
		analytics.GET("/dashboard", h.AnalyticsHandler.Dashboard)
		analytics.GET("/word-cloud", h.AnalyticsHandler.WordCloud)
	}

	// ==================== AI ====================
	ai := api.Group("/ai")
	ai.Use(h.AuthMiddleware.Auth())
	{
		ai.POST("/generate-prompt", h.AIHandler.GeneratePrompt)
		ai.POST("/improve-text", h.AIHandler.ImproveText)
		ai.POST("/chat", h.AIHandler.Chat)
		ai.GET("/conversation-history", h.AIHandler.ConversationHistory)
		ai.DELETE("/conversation-history", h.AIHandler.ClearHistory)
	}
}
