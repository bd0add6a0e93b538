package main

import (
	"context"                           // context package is needed for Redis operations
	"log"                               // log package is needed for logging
	"store_ratings/internal/api"        // Custom package for API handlers
	"store_ratings/internal/config"     // Custom package for configuration
	"store_ratings/internal/domain"     // Custom package for domain models
	"store_ratings/internal/middleware" // Custom package for middleware
	"time"                              // Time durations

	// For loading .env files
	"github.com/gin-contrib/cors"  // CORS middleware for the frontend origin
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/postgres"      // PostgreSQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Allow the frontend origin
	corsOrigin := cfg.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173" // Default dev frontend origin
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},                                        // Frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}, // Allowed methods
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},          // Allowed headers
		AllowCredentials: true,                                                         // Allow cookies/headers
		MaxAge:           12 * time.Hour,                                               // Preflight cache
	}))

	// Convert handler errors into the uniform envelope
	r.Use(middleware.ErrorHandler())

	// Liveness probe
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api") // All routes live under /api

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/signup", api.SignupHandler(db, cfg.JWTSecret))  // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(db, cfg.JWTSecret))    // Login endpoint
	authGroup.POST("/refresh", api.RefreshHandler(db, cfg.JWTSecret)) // Access token refresh endpoint
	authGroup.PUT("/update-password",
		middleware.JWTAuthMiddleware(cfg.JWTSecret), api.UpdatePasswordHandler(db)) // Password change, any authenticated user
	authGroup.GET("/me",
		middleware.JWTAuthMiddleware(cfg.JWTSecret), api.MeHandler(db)) // Current profile

	// Store routes
	storesGroup := apiGroup.Group("/stores")
	storesGroup.GET("",
		middleware.JWTAuthMiddleware(cfg.JWTSecret), api.ListStoresHandler(db)) // Listing, any authenticated user
	storesGroup.POST("",
		middleware.JWTAuthMiddleware(cfg.JWTSecret, domain.RoleSystemAdmin),
		api.CreateStoreHandler(db, redisClient)) // Creation, admin only

	// Rating routes
	ratingsGroup := apiGroup.Group("/ratings")
	ratingsGroup.GET("/:storeId", api.GetStoreRatingsHandler(db, redisClient)) // Public summary endpoint
	ratingsGroup.POST("/:storeId",
		middleware.JWTAuthMiddleware(cfg.JWTSecret),
		api.SubmitRatingHandler(db, redisClient)) // Rating upsert, any authenticated user

	// Admin routes (protected, admin only)
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, domain.RoleSystemAdmin))
	adminGroup.GET("/users", api.ListUsersHandler(db))                  // User listing endpoint
	adminGroup.POST("/users", api.CreateUserHandler(db, redisClient))   // User creation endpoint
	adminGroup.GET("/dashboard", api.DashboardHandler(db, redisClient)) // Dashboard counts endpoint

	// Store owner routes (protected, store_owner only)
	ownerGroup := apiGroup.Group("/store-owner")
	ownerGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, domain.RoleStoreOwner))
	ownerGroup.GET("/ratings", api.OwnerRatingsHandler(db))              // Ratings received endpoint
	ownerGroup.GET("/average-rating", api.OwnerAverageRatingHandler(db)) // Cross-store average endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
