package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

type NewsHandler struct {
	newsService *services.NewsService
}

func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

func (h *NewsHandler) List(c *gin.Context) {
	var req services.NewsListRequest
	if !bindQuery(c, &req) {
		return
	}
	news, err := h.newsService.List(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, news)
}

func (h *NewsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "news")
	if !ok {
		return
	}
	news, err := h.newsService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, news)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req services.CreateNewsRequest
	if !bindJSON(c, &req) {
		return
	}
	news, err := h.newsService.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, news)
}

func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "news")
	if !ok {
		return
	}
	var req services.UpdateNewsRequest
	if !bindJSON(c, &req) {
		return
	}
	news, err := h.newsService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, news)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "news")
	if !ok {
		return
	}
	if err := h.newsService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "news deleted successfully")
}
