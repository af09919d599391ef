package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propcore/internal/client"
	"propcore/internal/config"
	"propcore/internal/handler"
	"propcore/internal/repository"
	"propcore/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Property Search Proxy")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize optional search-log repository
	var searchLog service.SearchLogger
	if cfg.PostgreSQL.DSN != "" {
		repo, err := repository.NewPostgresRepository(
			cfg.PostgreSQL.DSN,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()
		searchLog = repo
		log.Println("✅ Connected to PostgreSQL search-log database")
	} else {
		log.Println("⚠️  DATABASE_URL not set - search telemetry logging is disabled")
	}

	// Initialize upstream clients
	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	locationClient := client.NewLocationClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.APIHost, timeout)
	propertyClient := client.NewPropertyClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.APIHost, timeout)

	log.Printf("✅ Upstream clients initialized")
	log.Printf("   - Base URL: %s", cfg.Upstream.BaseURL)
	log.Printf("   - Timeout: %s", timeout)

	// Initialize services
	interpreter := service.NewInterpreter(service.DefaultCategories, locationClient)
	searchService := service.NewSearchService(
		propertyClient,
		locationClient,
		searchLog,
		cfg.Search.PageSize,
		cfg.Search.DefaultSort,
	)

	log.Println("✅ Services initialized")

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(searchService)
	interpretHandler := handler.NewInterpretHandler(interpreter)
	locationHandler := handler.NewLocationHandler(searchService)
	feedbackHandler := handler.NewFeedbackHandler(searchService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "property-search-proxy",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/search", searchHandler.Search)
		apiV1.POST("/interpret", interpretHandler.Interpret)
		apiV1.GET("/locations", locationHandler.Autocomplete)
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
