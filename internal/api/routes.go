// Package api contains the API routes for the Yeshua-Christ API
package api

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/redis/go-redis/v9"
	"github.com/yeshuachrist/ycapi/internal/api/handlers"
	"github.com/yeshuachrist/ycapi/internal/api/middleware"
	"github.com/yeshuachrist/ycapi/internal/config"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/response"
	"gorm.io/gorm"
)

// SetupRoutes configures the routes for the API
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) {

	// Create a group for all API routes
	api := e.Group("/api")

	// Index route
	api.GET("/", indexRoute)

	authService := service.NewAuthService(db, cfg)
	verifier := service.NewQuickAuthVerifier(cfg)
	sessionGate := middleware.SessionAuth(authService)

	// Admin routes
	adminHandler := handlers.NewAdminHandler(authService, verifier, cfg)
	adminGroup := api.Group("/admin")
	adminGroup.GET("", adminHandler.Introspect)
	adminGroup.POST("/login", adminHandler.Login)
	adminGroup.POST("/logout", adminHandler.Logout, sessionGate)
	adminGroup.POST("/change-password", adminHandler.ChangePassword, sessionGate)
	adminGroup.POST("/users", adminHandler.CreateUser)

	// Video routes (list is public, writes are gated per route)
	videoService := service.NewVideoService(db)
	videoHandler := handlers.NewVideoHandler(videoService, authService, verifier)
	videoGroup := api.Group("/videos")
	videoGroup.GET("", videoHandler.List)
	videoGroup.POST("", videoHandler.Create)
	videoGroup.POST("/reorder", videoHandler.Reorder, sessionGate)
	videoGroup.DELETE("/:id", videoHandler.Delete, sessionGate)

	// Daily verse route (public)
	verseService := service.NewVerseService(redisClient)
	verseHandler := handlers.NewVerseHandler(verseService)
	api.GET("/daily-verse", verseHandler.DailyVerse)

	// Farcaster routes
	feedService := service.NewFarcasterService(redisClient)
	farcasterHandler := handlers.NewFarcasterHandler(feedService, verifier)
	api.GET("/farcaster", farcasterHandler.Feed)
	api.GET("/me", farcasterHandler.Me)

}

// indexRoute sets up the index route for the API
func indexRoute(c echo.Context) error {
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	message := fmt.Sprintf("%s %s", cfg.APIName, cfg.APIVersion)
	return response.SuccessResponse(c, message)
}
