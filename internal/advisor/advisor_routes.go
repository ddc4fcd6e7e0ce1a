package advisor

import (
	"resto-ops/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	adv := r.Group("/advisor")
	adv.Use(middleware.AuthMiddleware())
	adv.Use(middleware.ContextLogger(logger))
	{
		adv.POST("/suggestions",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RoleMiddleware("Manager"),
			handler.Suggest,
		)
	}
}
