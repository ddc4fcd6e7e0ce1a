package activitylog

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("activitylog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) List(c *gin.Context) {
	restaurantID := c.GetString("restaurant_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	entries, total, err := h.service.List(c.Request.Context(), restaurantID, page, pageSize)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("list activity logs failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, entries, &meta)
}

// Feed serves the entries recorded by this process since startup, for the
// dashboard's live panel.
func (h *Handler) Feed(c *gin.Context) {
	restaurantID := c.GetString("restaurant_id")
	response.Success(c, http.StatusOK, h.service.Feed(restaurantID), nil)
}
