package employee

import (
	"resto-ops/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.POST("",
			middleware.RateLimitByUser(1, 5),
			handler.Create,
		)
		employees.GET("",
			middleware.RateLimitByUser(5, 20),
			handler.GetRoster,
		)
		employees.GET("/options",
			middleware.RateLimitByUser(10, 40),
			handler.GetOptions,
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(5, 20),
			handler.GetByID,
		)
		employees.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			handler.Update,
		)

		employees.POST("/:id/archive",
			middleware.RateLimitByUser(1, 5),
			handler.Archive,
		)
		employees.PUT("/:id/archive-reason",
			middleware.RateLimitByUser(1, 5),
			handler.UpdateArchiveReason,
		)
		employees.POST("/:id/trash",
			middleware.RateLimitByUser(1, 5),
			handler.Trash,
		)
		employees.POST("/:id/restore",
			middleware.RateLimitByUser(1, 5),
			handler.RestoreFromTrash,
		)
		employees.POST("/:id/reinstate",
			middleware.RateLimitByUser(1, 5),
			handler.RestoreFromArchive,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("Manager"),
			handler.Purge,
		)
	}
}
