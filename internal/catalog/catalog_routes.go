package catalog

import (
	"resto-ops/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	settings := r.Group("/settings")
	settings.Use(middleware.AuthMiddleware())
	settings.Use(middleware.ContextLogger(logger))
	{
		settings.GET("/skills",
			middleware.RateLimitByUser(5, 20),
			handler.GetSkills,
		)
		settings.PUT("/skills",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("Manager"),
			handler.ReplaceSkills,
		)

		settings.GET("/certs",
			middleware.RateLimitByUser(5, 20),
			handler.GetCertConfigs,
		)
		settings.PUT("/certs",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("Manager"),
			handler.ReplaceCertConfigs,
		)

		settings.GET("/contract-types",
			middleware.RateLimitByUser(5, 20),
			handler.GetContractTypes,
		)
		settings.PUT("/contract-types",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware("Manager"),
			handler.ReplaceContractTypes,
		)
	}
}
