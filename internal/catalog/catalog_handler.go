package catalog

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
	l := zap.L().Named("catalog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("catalog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("catalog request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetSkills(c *gin.Context) {
	resp, err := h.service.GetSkills(c.Request.Context(), c.GetString("restaurant_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReplaceSkills(c *gin.Context) {
	var req ReplaceSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input is invalid", err.Error())
		return
	}

	resp, err := h.service.ReplaceSkills(c.Request.Context(), c.GetString("restaurant_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCertConfigs(c *gin.Context) {
	resp, err := h.service.GetCertConfigs(c.Request.Context(), c.GetString("restaurant_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReplaceCertConfigs(c *gin.Context) {
	var req ReplaceCertConfigsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input is invalid", err.Error())
		return
	}

	resp, err := h.service.ReplaceCertConfigs(c.Request.Context(), c.GetString("restaurant_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetContractTypes(c *gin.Context) {
	resp, err := h.service.GetContractTypes(c.Request.Context(), c.GetString("restaurant_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReplaceContractTypes(c *gin.Context) {
	var req ReplaceContractTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input is invalid", err.Error())
		return
	}

	resp, err := h.service.ReplaceContractTypes(c.Request.Context(), c.GetString("restaurant_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
