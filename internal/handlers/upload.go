package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/apperr"
	"github.com/hubinova/backend/pkg/response"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Upload stores an image from the multipart field "file"
// POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		response.BadRequest(c, "file is required")
		return
	}
	if err != nil {
		response.Error(c, services.BindError(err))
		return
	}
	if header.Size > h.uploadService.MaxBytes() {
		response.Error(c, apperr.Newf(apperr.CodeTooLarge, "file exceeds %d MB", h.uploadService.MaxBytes()>>20))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "failed to read file")
		return
	}
	defer file.Close()

	name, err := h.uploadService.SaveImage(c.Request.Context(), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, UploadResponse{URL: publicURL(c.Request, "/uploads/"+name), Filename: name})
}

// publicURL builds an absolute URL honoring reverse proxy headers.
func publicURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return fmt.Sprintf("%s://%s%s", scheme, host, path)
}
