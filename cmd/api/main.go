package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"quizforge-api/internal/api"
	"quizforge-api/internal/api/handlers"
	"quizforge-api/internal/config"
	"quizforge-api/internal/db"
	"quizforge-api/internal/repository"
	"quizforge-api/internal/services"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Initialize database connection
	database, err := db.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Get underlying *sql.DB instance for connection pool settings
	sqlDB, err := database.DB()
	if err != nil {
		log.Fatal("Failed to get underlying *sql.DB instance:", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	usageRepo := repository.NewUsageRepository(database)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	cacheConfig := config.NewCacheConfig()
	var cache services.CacheService
	if redisCache, err := services.NewRedisCacheService(cacheConfig); err != nil {
		log.Printf("Warning: running without cache: %v", err)
	} else {
		cache = redisCache
	}

	authService := services.NewAuthService(userRepo, jwtSecret)
	quizService := services.NewQuizService(quizRepo, cache, cacheConfig.DefaultTTL)
	attemptService := services.NewAttemptService(attemptRepo, quizRepo)
	usageService := services.NewUsageService(usageRepo, config.NewQuotaConfig())
	statsService := services.NewStatsService(quizRepo, attemptRepo)
	generationService := services.NewGenerationService(config.NewGenerationConfig())

	// Initialize handlers
	router := api.SetupRoutes(database, authService, api.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Quiz:     handlers.NewQuizHandler(quizService),
		Attempt:  handlers.NewAttemptHandler(attemptService),
		Usage:    handlers.NewUsageHandler(usageService),
		Generate: handlers.NewGenerateHandler(generationService, usageService),
		User:     handlers.NewUserHandler(authService, statsService),
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	// Create server with timeouts
	srv := &http.Server{
		Handler:      corsMiddleware.Handler(router),
		Addr:         ":" + getPort(),
		WriteTimeout: 90 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start server
	log.Printf("Server starting on port %s...", getPort())
	log.Fatal(srv.ListenAndServe())
}

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}
	return port
}
