package activitylog

import (
	"resto-ops/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	logs := r.Group("/logs")
	logs.Use(middleware.AuthMiddleware())
	logs.Use(middleware.ContextLogger(logger))
	{
		logs.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)
		logs.GET("/feed",
			middleware.RateLimitByUser(5, 20),
			handler.Feed,
		)
	}
}
