package routes

import (
	"mwork_admission/internal/auth"
	"mwork_admission/internal/handlers"
	"mwork_admission/internal/logger"
	"mwork_admission/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter собирает gin.Engine с общими middleware и всеми маршрутами.
func NewRouter(appHandlers *handlers.AppHandlers, verifier *auth.Verifier) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		gin.Recovery(),
	)

	RegisterPublicRoutes(r)
	RegisterRoutes(r, appHandlers, verifier)
	return r
}

// RegisterRoutes регистрирует HTTP API v1. Все маршруты требуют токен.
func RegisterRoutes(r *gin.Engine, appHandlers *handlers.AppHandlers, verifier *auth.Verifier) {
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(verifier))
	{
		appHandlers.CastingHandler.RegisterRoutes(api)
		appHandlers.AssignmentHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}
	logger.Debug("API v1 routes registered", "routes", len(r.Routes()))
}
