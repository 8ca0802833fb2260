package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

type AccessLogHandler struct {
	accessLogService *services.AccessLogService
}

func NewAccessLogHandler(accessLogService *services.AccessLogService) *AccessLogHandler {
	return &AccessLogHandler{accessLogService: accessLogService}
}

// List returns a page of access logs
// GET /api/access-logs
func (h *AccessLogHandler) List(c *gin.Context) {
	var req services.AccessLogListRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.accessLogService.List(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}
