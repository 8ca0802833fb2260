package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/drafts"
	"github.com/hubinova/backend/internal/middleware"
	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/internal/services"
	"github.com/hubinova/backend/pkg/response"
)

type SolutionHandler struct {
	solutionService *services.SolutionService
	drafts          drafts.Store
}

func NewSolutionHandler(solutionService *services.SolutionService, store drafts.Store) *SolutionHandler {
	return &SolutionHandler{solutionService: solutionService, drafts: store}
}

// GET /api/solutions
func (h *SolutionHandler) List(c *gin.Context) {
	var req services.SolutionListRequest
	if !bindQuery(c, &req) {
		return
	}
	solutions, err := h.solutionService.List(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, solutions)
}

// GET /api/solutions/my
func (h *SolutionHandler) My(c *gin.Context) {
	solutions, err := h.solutionService.ListByOwner(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, solutions)
}

// ForChallenge lists the submitted solutions of one challenge
// GET /api/challenges/:id/solutions
func (h *SolutionHandler) ForChallenge(c *gin.Context) {
	id, ok := parseID(c, "challenge")
	if !ok {
		return
	}
	solutions, err := h.solutionService.ListForChallenge(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, solutions)
}

// GET /api/solutions/:id
func (h *SolutionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "solution")
	if !ok {
		return
	}
	solution, err := h.solutionService.GetVisible(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, solution.View())
}

// POST /api/solutions
func (h *SolutionHandler) Create(c *gin.Context) {
	var req services.CreateSolutionRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := actorFrom(c)
	solution, err := h.solutionService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if solution.Status != models.SolutionDraft {
		clearDraft(c, h.drafts, drafts.Key{UserID: actor.ID, Entity: drafts.EntitySolution, ID: drafts.NewKey})
	}
	response.Created(c, solution.View())
}

// PUT /api/solutions/:id
func (h *SolutionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "solution")
	if !ok {
		return
	}
	var req services.UpdateSolutionRequest
	if !bindJSON(c, &req) {
		return
	}
	actor := actorFrom(c)
	solution, err := h.solutionService.UpdateAs(c.Request.Context(), actor, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if solution.Status != models.SolutionDraft {
		clearDraft(c, h.drafts, drafts.RecordKey(actor.ID, drafts.EntitySolution, id))
	}
	response.Success(c, solution.View())
}

// POST /api/solutions/:id/submit
func (h *SolutionHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "solution")
	if !ok {
		return
	}
	actor := actorFrom(c)
	solution, err := h.solutionService.Submit(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	clearDraft(c, h.drafts, drafts.RecordKey(actor.ID, drafts.EntitySolution, id))
	response.Success(c, solution.View())
}

// ChangeStatus sets status and/or status_id, optionally notifying the submitter
// PATCH /api/solutions/:id/status
func (h *SolutionHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c, "solution")
	if !ok {
		return
	}
	var req services.StatusChangeRequest
	if !bindJSON(c, &req) {
		return
	}
	solution, err := h.solutionService.ChangeStatus(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, solution.View())
}

// DELETE /api/solutions/:id
func (h *SolutionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "solution")
	if !ok {
		return
	}
	if err := h.solutionService.DeleteAs(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "solution deleted successfully")
}
