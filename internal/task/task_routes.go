package task

import (
	"resto-ops/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	tasks.Use(middleware.ContextLogger(logger))
	{
		tasks.POST("",
			middleware.RateLimitByUser(1, 5),
			handler.Create,
		)
		tasks.GET("",
			middleware.RateLimitByUser(5, 20),
			handler.List,
		)
		tasks.GET("/:id",
			middleware.RateLimitByUser(5, 20),
			handler.GetByID,
		)
		tasks.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			handler.Update,
		)
		tasks.DELETE("/:id",
			middleware.RateLimitByUser(1, 5),
			handler.Delete,
		)
		tasks.POST("/assignments",
			middleware.RateLimitByUser(1, 5),
			handler.ApplyAssignments,
		)
	}
}
