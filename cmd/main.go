package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wayfarelabs/wayfare-backend/internal/db"
	"github.com/wayfarelabs/wayfare-backend/internal/handlers"
	"github.com/wayfarelabs/wayfare-backend/internal/middleware"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/server"
	"github.com/wayfarelabs/wayfare-backend/internal/services"
	"github.com/wayfarelabs/wayfare-backend/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Production log mode also puts gin in release mode, which suppresses
	// internal error detail in responses.
	switch strings.ToLower(logMode) {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
	if jwtSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}
	jwtTTLHours := utils.GetEnvAsInt("JWT_TTL_HOURS", 168, log)
	port := utils.GetEnv("PORT", "8080", log)
	allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	safetyProfileRepo := repos.NewSafetyProfileRepo(thePG, log)
	tripRepo := repos.NewTripRepo(thePG, log)
	itineraryRepo := repos.NewItineraryRepo(thePG, log)
	safetyReportRepo := repos.NewSafetyReportRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	groqClient, err := services.NewGroqClient(log)
	if err != nil {
		log.Fatal("Could not init GroqClient", "error", err)
	}
	authService := services.NewAuthService(log, userRepo, jwtSecretKey, time.Duration(jwtTTLHours)*time.Hour)
	profileService := services.NewProfileService(log, userRepo, safetyProfileRepo)
	tripService := services.NewTripService(log, tripRepo)
	itineraryService := services.NewItineraryService(thePG, log, tripRepo, itineraryRepo, groqClient)
	safetyService := services.NewSafetyService(thePG, log, tripRepo, safetyReportRepo, safetyProfileRepo, groqClient)
	suggestionService := services.NewSuggestionService(log, tripRepo, groqClient)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(profileService, authService)
	tripHandler := handlers.NewTripHandler(tripService)
	itineraryHandler := handlers.NewItineraryHandler(itineraryService)
	safetyHandler := handlers.NewSafetyHandler(safetyService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)

	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins:    allowedOrigins,
		AuthMiddleware:    authMiddleware,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		TripHandler:       tripHandler,
		ItineraryHandler:  itineraryHandler,
		SafetyHandler:     safetyHandler,
		SuggestionHandler: suggestionHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
