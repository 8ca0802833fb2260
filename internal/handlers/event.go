package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, events)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	event, err := h.eventService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req services.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.eventService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	var req services.UpdateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.eventService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "event")
	if !ok {
		return
	}
	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "event deleted successfully")
}
