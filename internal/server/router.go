package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wayfarelabs/wayfare-backend/internal/handlers"
	"github.com/wayfarelabs/wayfare-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins    string
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	UserHandler       *handlers.UserHandler
	TripHandler       *handlers.TripHandler
	ItineraryHandler  *handlers.ItineraryHandler
	SafetyHandler     *handlers.SafetyHandler
	SuggestionHandler *handlers.SuggestionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/health", handlers.HealthCheck)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/auth/me", cfg.AuthHandler.Me)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	protected.GET("/users/profile", cfg.UserHandler.GetProfile)
	protected.PATCH("/users/profile", cfg.UserHandler.UpdateProfile)
	protected.GET("/users/safety-profile", cfg.UserHandler.GetSafetyProfile)
	protected.POST("/users/safety-profile", cfg.UserHandler.UpsertSafetyProfile)

	protected.POST("/trips", cfg.TripHandler.Create)
	protected.GET("/trips", cfg.TripHandler.List)
	protected.GET("/trips/:id", cfg.TripHandler.Get)
	protected.PATCH("/trips/:id", cfg.TripHandler.Update)
	protected.DELETE("/trips/:id", cfg.TripHandler.Delete)

	protected.POST("/itineraries/generate", cfg.ItineraryHandler.Generate)
	protected.GET("/itineraries/:tripId", cfg.ItineraryHandler.GetByTrip)

	protected.POST("/safety/generate", cfg.SafetyHandler.Generate)
	protected.GET("/safety/:tripId", cfg.SafetyHandler.GetByTrip)

	protected.POST("/suggestions/hotels/generate", cfg.SuggestionHandler.GenerateHotels)
	protected.GET("/suggestions/hotels/:tripId", cfg.SuggestionHandler.GetHotels)
	protected.POST("/suggestions/flights/generate", cfg.SuggestionHandler.GenerateFlights)
	protected.GET("/suggestions/flights/:tripId", cfg.SuggestionHandler.GetFlights)

	return router
}
