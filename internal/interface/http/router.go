package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giquina/armora-sub001/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	logger = logger.With("component", "http.router")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/risk/questions", handler.RiskQuestions)
		api.POST("/risk/assessments", handler.AssessRisk)
		api.GET("/catalog/tiers", handler.ListTiers)
		api.GET("/catalog/scenarios", handler.ListScenarios)
		api.GET("/stats", handler.Stats)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)

		optional := api.Group("", optionalAuthMiddleware(handler.authSvc))
		optional.POST("/bookings", handler.StartBooking)
		optional.GET("/bookings/:id", handler.GetBooking)
		optional.PATCH("/bookings/:id", handler.UpdateBooking)
		optional.POST("/bookings/:id/assessment", handler.AssessBooking)
		optional.POST("/bookings/:id/submit", handler.SubmitBooking)
		optional.POST("/bookings/:id/cancel", handler.CancelSubmission)
		optional.POST("/bookings/:id/export", handler.ExportBooking)
		optional.POST("/bookings/:id/resume", handler.ResumeBooking)
		optional.GET("/destinations/recent", handler.RecentDestinations)

		protected := api.Group("", authMiddleware(handler.authSvc))
		protected.GET("/auth/profile", handler.Profile)
		protected.POST("/auth/reward", handler.UnlockReward)
		protected.GET("/assignments", handler.Assignments)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
