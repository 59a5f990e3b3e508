package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"society-service-server/config"
	"society-service-server/database"
	"society-service-server/jobs"
	"society-service-server/middleware"
	"society-service-server/routes"
	"society-service-server/services"
	ws "society-service-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())
	middleware.StartRateLimiterCleanup()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Society Service Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Live-update hub: one subscription feed per collection, released on
	// disconnect
	hub := ws.NewHub()
	go hub.Run()
	routes.InitFeedHub(hub)
	routes.RegisterFeedRoutes(router, hub)

	// Derived category index, invalidated by provider writes
	categoryIndex, err := services.NewCategoryIndex(database.DB)
	if err != nil {
		log.Fatal("Failed to create category index:", err)
	}
	routes.InitCategoryIndex(categoryIndex)

	// Booking event publisher (optional; enabled by AMQP_URL)
	publisher, err := services.NewEventPublisher()
	if err != nil {
		log.Printf("⚠️ Booking event publisher disabled: %v", err)
	}
	defer publisher.Close()
	routes.InitEventPublisher(publisher)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Provider roster and derived categories (public)
		serviceRoutes := api.Group("/services")
		routes.RegisterServiceRoutes(serviceRoutes)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Slot reservation
			bookingRoutes := protected.Group("/bookings")
			routes.RegisterBookingRoutes(bookingRoutes)

			// Property listings
			propertyRoutes := protected.Group("/properties")
			routes.RegisterPropertyRoutes(propertyRoutes)

			// Append-only record flows
			complaintRoutes := protected.Group("/complaints")
			routes.RegisterComplaintRoutes(complaintRoutes)

			noticeRoutes := protected.Group("/notices")
			routes.RegisterNoticeRoutes(noticeRoutes)

			chatRoutes := protected.Group("/chat")
			routes.RegisterChatRoutes(chatRoutes)

			serviceRequestRoutes := protected.Group("/service-requests")
			routes.RegisterServiceRequestRoutes(serviceRequestRoutes)
		}

		// Admin routes (write boundary for providers, properties, notices)
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			routes.RegisterProviderAdminRoutes(adminRoutes)
			routes.RegisterPropertyAdminRoutes(adminRoutes)
			routes.RegisterNoticeAdminRoutes(adminRoutes)
			adminRoutes.GET("/bookings/:date", routes.ListBookingsByDate)
		}
	}

	// Start background jobs
	cleanupJob := jobs.NewCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = config.AppConfig.Server.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
