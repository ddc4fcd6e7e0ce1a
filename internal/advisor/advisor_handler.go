package advisor

import (
	"net/http"

	"resto-ops/internal/shared/apperror"
	"resto-ops/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("advisor.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("advisor.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Suggest(c *gin.Context) {
	assignments, err := h.service.Suggest(c.Request.Context(), c.GetString("restaurant_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("advisor request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignments": assignments}, nil)
}
