// Package main is the entry point for the Yeshua-Christ API
package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/yeshuachrist/ycapi/internal/api"
	"github.com/yeshuachrist/ycapi/internal/api/middleware"
	"github.com/yeshuachrist/ycapi/internal/config"
	"github.com/yeshuachrist/ycapi/internal/repository"
	"github.com/yeshuachrist/ycapi/internal/service"
	"github.com/yeshuachrist/ycapi/pkg/utils/zaplogger"
)

func main() {
	// Load configuration
	cfg, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Print the configuration
	fmt.Println(cfg.String())

	// Connect to Postgres
	db, err := repository.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}

	// Connect Redis
	redisClient, err := repository.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Init logger
	err = zaplogger.InitLogger(db)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Setup logger
	defer zaplogger.Sync()
	zaplogger.SetLogLevel(cfg.ServerLogLevel)

	// startUpMessage
	zaplogger.Info(cfg.APIName + " - " + cfg.APIVersion + " initialized")
	zaplogger.Info("Postgres initialized")
	zaplogger.Info("Redis initialized")

	// Create the bootstrap admin when no operator exists yet
	authService := service.NewAuthService(db, cfg)
	if err := authService.EnsureBootstrapAdmin(); err != nil {
		zaplogger.Error("Failed to ensure bootstrap admin", zaplogger.Fields{
			"error": err.Error(),
		})
	}

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Setup middleware
	middleware.SetupLoggerMiddleware(e)

	// Setup routes
	api.SetupRoutes(e, cfg, db, redisClient)

	// Setup and start cron jobs
	cronService := service.NewCronService(cfg, db, redisClient)
	// start cron jobs
	cronService.Start()

	// Start the server
	startServer(e, cfg)

}

// startServer starts the Echo server on the specified port
func startServer(e *echo.Echo, cfg *config.Config) {
	port := cfg.ServerPort
	if port == "" {
		port = "3008"
	}
	zaplogger.Info("SERVER STARTED ON PORT " + port)
	e.Logger.Fatal(e.Start(":" + port))

}
