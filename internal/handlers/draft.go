package handlers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/drafts"
	"github.com/hubinova/backend/internal/middleware"
	"github.com/hubinova/backend/pkg/apperr"
	"github.com/hubinova/backend/pkg/logger"
	"github.com/hubinova/backend/pkg/response"
)

type DraftHandler struct {
	store drafts.Store
}

func NewDraftHandler(store drafts.Store) *DraftHandler {
	return &DraftHandler{store: store}
}

func draftKey(c *gin.Context) drafts.Key {
	return drafts.Key{
		UserID: middleware.GetUserID(c),
		Entity: c.Param("entity"),
		ID:     c.Param("key"),
	}
}

func draftError(err error) error {
	switch {
	case errors.Is(err, drafts.ErrNotFound):
		return apperr.NotFound("draft not found")
	case errors.Is(err, drafts.ErrInvalidEntity), errors.Is(err, drafts.ErrInvalidKey), errors.Is(err, drafts.ErrInvalidData):
		return apperr.Validation(err.Error())
	case errors.Is(err, drafts.ErrTooLarge):
		return apperr.New(apperr.CodeTooLarge, err.Error())
	default:
		return apperr.Upstream(err, "draft store error")
	}
}

// Get
// GET /api/drafts/:entity/:key
func (h *DraftHandler) Get(c *gin.Context) {
	d, err := h.store.Get(c.Request.Context(), draftKey(c))
	if err != nil {
		response.Error(c, draftError(err))
		return
	}
	response.Success(c, d)
}

// Put replaces the stored form state with the request body
// PUT /api/drafts/:entity/:key
func (h *DraftHandler) Put(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperr.Validation("invalid request body"))
		return
	}
	d, err := h.store.Put(c.Request.Context(), draftKey(c), json.RawMessage(body))
	if err != nil {
		response.Error(c, draftError(err))
		return
	}
	response.Success(c, d)
}

// Delete
// DELETE /api/drafts/:entity/:key
func (h *DraftHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), draftKey(c)); err != nil {
		response.Error(c, draftError(err))
		return
	}
	response.Message(c, "draft deleted successfully")
}

// clearDraft drops a saved draft once its record has been submitted. Failures
// only cost a stale draft, so they are logged.
func clearDraft(c *gin.Context, store drafts.Store, key drafts.Key) {
	if store == nil || key.UserID == 0 {
		return
	}
	if err := store.Delete(c.Request.Context(), key); err != nil {
		logger.Warn().Err(err).Str("draft", key.String()).Msg("[Drafts] failed to clear draft")
	}
}
