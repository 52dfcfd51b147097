package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Victorhugosouza42/portal-banco-horas/internal/api/handler"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/api/middleware"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/ports"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/core/service"
	"github.com/Victorhugosouza42/portal-banco-horas/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when sessions live in memory.
func NewRouter(cfg *config.Config, gateway ports.Gateway, store ports.SessionStore, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	sessionService := service.NewSessionService(gateway, store, cfg.Session.TTL, log)
	requestService := service.NewRequestService(gateway, sessionService, log)
	challengeService := service.NewChallengeService(gateway, sessionService, log)
	adminService := service.NewAdminService(gateway, sessionService, log)

	authHandler := handler.NewAuthHandler(sessionService)
	portalHandler := handler.NewPortalHandler(sessionService, requestService, challengeService, gateway)
	adminHandler := handler.NewAdminHandler(adminService)

	sessionRequired := middleware.Session(sessionService)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/signup", authHandler.Signup)
	e.GET("/roles", portalHandler.Roles)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(gateway, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the backend up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated portal routes ---
	me := e.Group("/me", sessionRequired)
	me.GET("", portalHandler.Profile)
	me.POST("/logout", authHandler.Logout)
	me.GET("/requests", portalHandler.Requests)
	me.POST("/requests", portalHandler.SubmitRequest)
	me.POST("/convert", portalHandler.Convert)
	me.GET("/challenges", portalHandler.Board)
	me.POST("/challenges/:id/enroll", portalHandler.Enroll)
	me.POST("/challenges/:id/proof", portalHandler.SubmitProof)

	// --- Moderation routes ---
	admin := e.Group("/admin", sessionRequired, middleware.RequireAdmin())
	admin.GET("/settings", adminHandler.Settings)
	admin.PUT("/settings", adminHandler.UpdateSettings)

	admin.GET("/requests", adminHandler.Requests)
	admin.POST("/requests/:id/process", adminHandler.ProcessRequest)

	admin.GET("/validations", adminHandler.PendingValidations)
	admin.GET("/participations", adminHandler.AllParticipations)
	admin.POST("/participations/:id/validate", adminHandler.ValidateParticipant)

	admin.GET("/challenges", adminHandler.Challenges)
	admin.POST("/challenges", adminHandler.CreateChallenge)
	admin.DELETE("/challenges/:id", adminHandler.DeleteChallenge)

	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/users/:id/reset-password", adminHandler.ResetPassword)
	admin.GET("/users/:id/requests", adminHandler.UserRequests)
	admin.POST("/users/:id/adjust", adminHandler.AdjustHours)

	admin.GET("/roles", adminHandler.Roles)
	admin.POST("/roles", adminHandler.AddRole)
	admin.DELETE("/roles/:id", adminHandler.DeleteRole)

	return e
}
