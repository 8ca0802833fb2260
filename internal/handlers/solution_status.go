package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

type SolutionStatusHandler struct {
	statusService *services.SolutionStatusService
}

func NewSolutionStatusHandler(statusService *services.SolutionStatusService) *SolutionStatusHandler {
	return &SolutionStatusHandler{statusService: statusService}
}

func (h *SolutionStatusHandler) List(c *gin.Context) {
	statuses, err := h.statusService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, statuses)
}

func (h *SolutionStatusHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "solution status")
	if !ok {
		return
	}
	status, err := h.statusService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

func (h *SolutionStatusHandler) Create(c *gin.Context) {
	var req services.CreateSolutionStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := h.statusService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, status)
}

func (h *SolutionStatusHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "solution status")
	if !ok {
		return
	}
	var req services.UpdateSolutionStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, err := h.statusService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

func (h *SolutionStatusHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "solution status")
	if !ok {
		return
	}
	if err := h.statusService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "solution status deleted successfully")
}
