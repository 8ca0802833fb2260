package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

type GeralHandler struct {
	geralService *services.GeralService
}

func NewGeralHandler(geralService *services.GeralService) *GeralHandler {
	return &GeralHandler{geralService: geralService}
}

// Get returns the site settings
// GET /api/geral
func (h *GeralHandler) Get(c *gin.Context) {
	settings, err := h.geralService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

// Update
// PUT /api/geral
func (h *GeralHandler) Update(c *gin.Context) {
	var req services.UpdateGeralRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.geralService.Update(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}
