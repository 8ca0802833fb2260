package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/drafts"
	"github.com/hubinova/backend/internal/middleware"
	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	drafts           drafts.Store
}

func NewChallengeHandler(challengeService *services.ChallengeService, store drafts.Store) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService, drafts: store}
}

// List returns challenges, hiding drafts from non-admins
// GET /api/challenges
func (h *ChallengeHandler) List(c *gin.Context) {
	var req services.ChallengeListRequest
	if !bindQuery(c, &req) {
		return
	}
	challenges, err := h.challengeService.List(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, challenges)
}

// My returns the caller's challenges, drafts included
// GET /api/challenges/my
func (h *ChallengeHandler) My(c *gin.Context) {
	challenges, err := h.challengeService.ListByOwner(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, challenges)
}

// GET /api/challenges/:id
func (h *ChallengeHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "challenge")
	if !ok {
		return
	}
	challenge, err := h.challengeService.GetVisible(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, challenge)
}

// POST /api/challenges
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req services.CreateChallengeRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := actorFrom(c)
	challenge, err := h.challengeService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if challenge.Status != models.ChallengeDraft {
		clearDraft(c, h.drafts, drafts.Key{UserID: actor.ID, Entity: drafts.EntityChallenge, ID: drafts.NewKey})
	}
	response.Created(c, challenge)
}

// PUT /api/challenges/:id
func (h *ChallengeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "challenge")
	if !ok {
		return
	}
	var req services.UpdateChallengeRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := actorFrom(c)
	challenge, err := h.challengeService.UpdateAs(c.Request.Context(), actor, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if challenge.Status != models.ChallengeDraft {
		clearDraft(c, h.drafts, drafts.RecordKey(actor.ID, drafts.EntityChallenge, id))
	}
	response.Success(c, challenge)
}

// Submit moves a draft to pending
// POST /api/challenges/:id/submit
func (h *ChallengeHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "challenge")
	if !ok {
		return
	}
	actor := actorFrom(c)
	challenge, err := h.challengeService.Submit(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	clearDraft(c, h.drafts, drafts.RecordKey(actor.ID, drafts.EntityChallenge, id))
	response.Success(c, challenge)
}

// DELETE /api/challenges/:id
func (h *ChallengeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "challenge")
	if !ok {
		return
	}
	if err := h.challengeService.DeleteAs(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "challenge deleted successfully")
}
