package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"monkframe.backend/internal/interfaces/http/handlers"
	"monkframe.backend/internal/interfaces/http/middleware"
	"monkframe.backend/internal/interfaces/ws"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	notificationHandler *handlers.NotificationHandler
	assetHandler        *handlers.AssetHandler
	adminHandler        *handlers.AdminHandler
	socketHandler       *ws.Handler
	authMiddleware      gin.HandlerFunc
}

// applyCORSMiddleware echoes the request origin so browser clients on any
// host can talk to the API during development.
func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, X-Session-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "monkframe-backend",
			"version": "0.1.0",
		})
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	// Socket endpoint authenticates via its own setup handshake
	r.GET("/ws", d.socketHandler.Serve)

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/otp", d.authHandler.RequestOTP)
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/google", d.authHandler.GoogleLogin)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Asset routes (public read, protected write)
		assets := v1.Group("/assets")
		{
			assets.GET("", d.assetHandler.List)
			assets.GET("/:id", d.assetHandler.Get)
		}
		assetsAuth := v1.Group("/assets")
		assetsAuth.Use(d.authMiddleware)
		{
			assetsAuth.POST("", d.assetHandler.Create)
			assetsAuth.PATCH("/:id", d.assetHandler.Update)
			assetsAuth.DELETE("/:id", d.assetHandler.Delete)
			assetsAuth.POST("/:id/like", d.assetHandler.ToggleLike)
			assetsAuth.POST("/:id/wishlist", d.assetHandler.ToggleWishlist)
			assetsAuth.POST("/:id/purchase", d.assetHandler.Purchase)
		}

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("/:id/complete", d.assetHandler.CompletePayment)
		}

		// Notification routes (protected)
		notifications := v1.Group("/notifications")
		notifications.Use(d.authMiddleware)
		{
			notifications.GET("", d.notificationHandler.List)
			notifications.GET("/unread-count", d.notificationHandler.UnreadCount)
			notifications.PATCH("/:id/read", d.notificationHandler.MarkRead)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/users/:id/role", d.adminHandler.UpdateUserRole)
			admin.PATCH("/users/:id/status", d.adminHandler.UpdateUserStatus)
			admin.GET("/payments", d.adminHandler.ListPayments)
		}
	}
}
