package employee

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// writeTransition sends a transition outcome. A move that was applied but
// not confirmed by the store still answers 200, with the warning attached.
func (h *Handler) writeTransition(c *gin.Context, result TransitionResult) {
	if !result.Persisted {
		response.SuccessWithWarning(c, http.StatusOK, result, result.Warning)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input is invalid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("restaurant_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetRoster(c *gin.Context) {
	resp, err := h.service.GetRoster(c.Request.Context(), c.GetString("restaurant_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context(), c.GetString("restaurant_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input is invalid", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Archive(c *gin.Context) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input is invalid", err.Error())
		return
	}

	result, err := h.service.Archive(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeTransition(c, result)
}

func (h *Handler) Trash(c *gin.Context) {
	result, err := h.service.Trash(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeTransition(c, result)
}

func (h *Handler) RestoreFromTrash(c *gin.Context) {
	result, err := h.service.RestoreFromTrash(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeTransition(c, result)
}

func (h *Handler) RestoreFromArchive(c *gin.Context) {
	result, err := h.service.RestoreFromArchive(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeTransition(c, result)
}

func (h *Handler) Purge(c *gin.Context) {
	result, err := h.service.Purge(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeTransition(c, result)
}

func (h *Handler) UpdateArchiveReason(c *gin.Context) {
	var req UpdateArchiveReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input is invalid", err.Error())
		return
	}

	result, err := h.service.UpdateArchiveReason(c.Request.Context(), c.GetString("restaurant_id"), c.Param("id"), req.Reason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeTransition(c, result)
}
