package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

// ContentHandler serves one content table (program info or how to participate).
type ContentHandler struct {
	contentService *services.ContentService
	name           string
}

func NewContentHandler(contentService *services.ContentService, name string) *ContentHandler {
	return &ContentHandler{contentService: contentService, name: name}
}

func (h *ContentHandler) List(c *gin.Context) {
	var req services.ContentListRequest
	if !bindQuery(c, &req) {
		return
	}
	sections, err := h.contentService.List(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, sections)
}

func (h *ContentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, h.name)
	if !ok {
		return
	}
	section, err := h.contentService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, section)
}

func (h *ContentHandler) Create(c *gin.Context) {
	var req services.CreateContentRequest
	if !bindJSON(c, &req) {
		return
	}
	section, err := h.contentService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, section)
}

func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, h.name)
	if !ok {
		return
	}
	var req services.UpdateContentRequest
	if !bindJSON(c, &req) {
		return
	}
	section, err := h.contentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, section)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, h.name)
	if !ok {
		return
	}
	if err := h.contentService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, h.name+" deleted successfully")
}
