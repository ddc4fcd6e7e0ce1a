package compliance

import (
	"resto-ops/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	compliance := r.Group("/compliance")
	compliance.Use(middleware.AuthMiddleware())
	compliance.Use(middleware.ContextLogger(logger))
	{
		compliance.GET("/dashboard",
			middleware.RateLimitByUser(5, 20),
			handler.Dashboard,
		)
	}
}
