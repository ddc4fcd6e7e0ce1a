package vacation

import (
	"resto-ops/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	vacations := r.Group("/vacations")
	vacations.Use(middleware.AuthMiddleware())
	vacations.Use(middleware.ContextLogger(logger))
	{
		vacations.POST("",
			middleware.RateLimitByUser(1, 5),
			handler.Create,
		)
		vacations.GET("",
			middleware.RateLimitByUser(5, 20),
			handler.List,
		)
		vacations.POST("/:id/approve",
			middleware.RateLimitByUser(1, 5),
			middleware.RoleMiddleware("Manager"),
			handler.Approve,
		)
		vacations.POST("/:id/reject",
			middleware.RateLimitByUser(1, 5),
			middleware.RoleMiddleware("Manager"),
			handler.Reject,
		)
		vacations.DELETE("/:id",
			middleware.RateLimitByUser(1, 5),
			handler.Delete,
		)
	}
}
