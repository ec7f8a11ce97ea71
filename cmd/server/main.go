package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"lunchbunch/internal/database"
	"lunchbunch/internal/handlers"
	"lunchbunch/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env in development; in production config comes from the platform
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	loc := loadLocation()

	// Push delivery is optional at boot: without Firebase credentials the
	// HTTP surface still works, scheduled broadcasts are dropped with a log.
	var sender services.Sender
	if fcm, err := services.NewFCMSender(context.Background()); err != nil {
		log.Printf("Warning: push delivery disabled: %v", err)
	} else {
		sender = fcm
	}
	pushService := services.NewPushService(sender)

	emailService := services.NewEmailService()
	handlers.Init(emailService, loc)

	// Start the per-minute reminder/winner scheduler
	worker := services.NewNotifyWorker(database.GetDB(), pushService, loc)
	worker.Start()

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	router.Use(cors.New(corsConfig))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Signed approve/deny links from manager emails
	router.GET("/approve", handlers.ApproveMember)

	// Group routes
	router.GET("/groups/:group_id", handlers.GetGroupByID)
	router.POST("/groups/:group_id/join", handlers.JoinGroup)
	router.POST("/groups/:group_id/ballots", handlers.CastBallot)

	// User routes (device registration, notification preferences)
	router.PUT("/users/:user_id/device", handlers.UpdateDevice)
	router.PUT("/users/:user_id/preferences", handlers.UpdatePreferences)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start the server
	fmt.Printf("Server starting on port %s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// loadLocation resolves the civil time zone the voting day runs in. Close
// times and ballot dates are interpreted in this zone.
func loadLocation() *time.Location {
	name := os.Getenv("TIMEZONE")
	if name == "" {
		name = "America/Chicago"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: invalid TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}
