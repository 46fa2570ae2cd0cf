package routes

import (
	"github.com/gin-gonic/gin"

	"habitat/internal/interfaces/http/handlers"
	"habitat/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *handlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
	SendRateLimit       gin.HandlerFunc
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		notifications.GET("", config.NotificationHandler.ListDeliveries)

		// Specific named endpoints (must come BEFORE /:id to avoid conflicts)
		notifications.GET("/unread-count", config.NotificationHandler.GetUnreadCount)
		// Using PATCH for batch state changes as per RESTful best practices
		notifications.PATCH("/read", config.NotificationHandler.MarkAllRead)

		// Dispatch endpoints are manager-only and rate limited per caller
		notifications.POST("/send",
			config.AuthMiddleware.RequireManager(),
			config.SendRateLimit,
			config.NotificationHandler.Send)
		notifications.POST("/send-to-scope",
			config.AuthMiddleware.RequireManager(),
			config.SendRateLimit,
			config.NotificationHandler.SendToScope)

		// Generic parameterized route (must come LAST)
		notifications.PATCH("/:id/read", config.NotificationHandler.MarkRead)
	}

	preferences := engine.Group("/notification-preferences")
	preferences.Use(config.AuthMiddleware.RequireAuth())
	{
		preferences.GET("", config.NotificationHandler.ListPreferences)
		preferences.PUT("", config.NotificationHandler.SetPreference)
	}

	templates := engine.Group("/notification-templates")
	templates.Use(config.AuthMiddleware.RequireAuth())
	templates.Use(config.AuthMiddleware.RequireManager())
	{
		templates.GET("", config.NotificationHandler.ListTemplates)
		templates.POST("", config.NotificationHandler.CreateTemplate)
		templates.PUT("/:id", config.NotificationHandler.UpdateTemplate)
	}
}
