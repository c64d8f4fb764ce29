package routes

import (
	"time"

	"classfeed/handlers"
	"classfeed/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Add health check endpoint for testing
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Classfeed API is running",
			"time":    time.Now().Unix(),
			"ws":      "WebSocket available at /ws",
		})
	})

	// CORS configuration with WebSocket support
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:5500", "http://127.0.0.1:5500", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes (no auth required)
	router.POST("/api/signup", handlers.Signup)
	router.POST("/api/login", handlers.Login)
	router.POST("/api/session/token", handlers.SessionFromToken)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	// Session
	protected.GET("/me", handlers.GetMe)

	// Feed
	protected.GET("/feed", handlers.GetFeed)
	protected.GET("/filters", handlers.GetFilters)
	protected.GET("/featured", handlers.GetFeatured)
	protected.GET("/posts/:id", handlers.GetPost)

	// Writes are rate limited per IP
	writes := protected.Group("")
	writes.Use(middleware.RateLimit(60, time.Minute))
	writes.POST("/posts", handlers.CreatePost)
	writes.PUT("/posts/:id", handlers.UpdatePost)
	writes.DELETE("/posts/:id", handlers.DeletePost)
	writes.PUT("/posts/:id/featured", handlers.SetFeatured)

	// Add a catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		// If it's an API route, return JSON 404
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error":   "Endpoint not found",
				"path":    c.Request.URL.Path,
				"message": "Check the API documentation for available endpoints",
			})
			return
		}
		// For non-API routes, let Gin handle it
		c.Next()
	})

	return router
}
