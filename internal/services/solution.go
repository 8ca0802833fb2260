package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/apperr"
	"gorm.io/gorm"
)

type SolutionService struct {
	db     *gorm.DB
	notify *NotificationService
}

func NewSolutionService(db *gorm.DB, notify *NotificationService) *SolutionService {
	return &SolutionService{db: db, notify: notify}
}

type SolutionListRequest struct {
	Status      string `form:"status"`
	ChallengeID uint   `form:"challenge_id"`
}

// SolutionDetails are the optional proposal fields shared by create requests.
type SolutionDetails struct {
	Axis                    string   `json:"axis"`
	Benefits                string   `json:"benefits"`
	TeamName                string   `json:"team_name"`
	ParticipantType         string   `json:"participant_type"`
	ProblemSolved           string   `json:"problem_solved"`
	ContributionObjectives  string   `json:"contribution_objectives"`
	DirectBeneficiaries     string   `json:"direct_beneficiaries"`
	DetailedOperation       string   `json:"detailed_operation"`
	SolutionDifferentials   string   `json:"solution_differentials"`
	TerritoryReplication    string   `json:"territory_replication"`
	RequiredResources       string   `json:"required_resources"`
	ValidationPrototyping   string   `json:"validation_prototyping"`
	SuccessIndicators       string   `json:"success_indicators"`
	EstablishedPartnerships string   `json:"established_partnerships"`
	SolutionContinuity      string   `json:"solution_continuity"`
	LinkedinLink            string   `json:"linkedin_link"`
	InstagramLink           string   `json:"instagram_link"`
	PortfolioLink           string   `json:"portfolio_link"`
	Attachments             []string `json:"attachments"`
	Document1URL            string   `json:"document_1_url"`
	Document2URL            string   `json:"document_2_url"`
	Document3URL            string   `json:"document_3_url"`
}

type CreateSolutionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ChallengeID uint   `json:"challenge_id" binding:"required"`
	Status      string `json:"status"`
	SolutionDetails
}

// UpdateSolutionRequest is a merge patch; challenge_id and created_by are
// not patchable.
type UpdateSolutionRequest struct {
	Title                   *string   `json:"title"`
	Description             *string   `json:"description"`
	Axis                    *string   `json:"axis"`
	Benefits                *string   `json:"benefits"`
	TeamName                *string   `json:"team_name"`
	ParticipantType         *string   `json:"participant_type"`
	ProblemSolved           *string   `json:"problem_solved"`
	ContributionObjectives  *string   `json:"contribution_objectives"`
	DirectBeneficiaries     *string   `json:"direct_beneficiaries"`
	DetailedOperation       *string   `json:"detailed_operation"`
	SolutionDifferentials   *string   `json:"solution_differentials"`
	TerritoryReplication    *string   `json:"territory_replication"`
	RequiredResources       *string   `json:"required_resources"`
	ValidationPrototyping   *string   `json:"validation_prototyping"`
	SuccessIndicators       *string   `json:"success_indicators"`
	EstablishedPartnerships *string   `json:"established_partnerships"`
	SolutionContinuity      *string   `json:"solution_continuity"`
	LinkedinLink            *string   `json:"linkedin_link"`
	InstagramLink           *string   `json:"instagram_link"`
	PortfolioLink           *string   `json:"portfolio_link"`
	Attachments             *[]string `json:"attachments"`
	Document1URL            *string   `json:"document_1_url"`
	Document2URL            *string   `json:"document_2_url"`
	Document3URL            *string   `json:"document_3_url"`
	Status                  *string   `json:"status"`
	// StatusID 0 clears the label.
	StatusID *uint `json:"status_id"`
}

func (r *UpdateSolutionRequest) patch() Patch {
	p := Patch{}
	SetField(p, "title", r.Title)
	SetField(p, "description", r.Description)
	SetField(p, "axis", r.Axis)
	SetField(p, "benefits", r.Benefits)
	SetField(p, "team_name", r.TeamName)
	SetField(p, "participant_type", r.ParticipantType)
	SetField(p, "problem_solved", r.ProblemSolved)
	SetField(p, "contribution_objectives", r.ContributionObjectives)
	SetField(p, "direct_beneficiaries", r.DirectBeneficiaries)
	SetField(p, "detailed_operation", r.DetailedOperation)
	SetField(p, "solution_differentials", r.SolutionDifferentials)
	SetField(p, "territory_replication", r.TerritoryReplication)
	SetField(p, "required_resources", r.RequiredResources)
	SetField(p, "validation_prototyping", r.ValidationPrototyping)
	SetField(p, "success_indicators", r.SuccessIndicators)
	SetField(p, "established_partnerships", r.EstablishedPartnerships)
	SetField(p, "solution_continuity", r.SolutionContinuity)
	SetField(p, "linkedin_link", r.LinkedinLink)
	SetField(p, "instagram_link", r.InstagramLink)
	SetField(p, "portfolio_link", r.PortfolioLink)
	SetField(p, "document_1_url", r.Document1URL)
	SetField(p, "document_2_url", r.Document2URL)
	SetField(p, "document_3_url", r.Document3URL)
	SetField(p, "status", r.Status)
	if r.StatusID != nil && *r.StatusID == 0 {
		p["status_id"] = nil
	} else {
		SetField(p, "status_id", r.StatusID)
	}
	if r.Attachments != nil {
		p["attachments"] = models.StringList(*r.Attachments)
	}
	return p
}

// StatusChangeRequest is the admin status transition. Notify opts into the
// WhatsApp message built from the assigned SolutionStatus.
type StatusChangeRequest struct {
	Status   *string `json:"status"`
	StatusID *uint   `json:"status_id"`
	Notify   bool    `json:"notify"`
}

func (s *SolutionService) scope(ctx context.Context) scope {
	return modelScope(s.db, ctx)
}

func views(solutions []models.Solution) []models.SolutionView {
	out := make([]models.SolutionView, 0, len(solutions))
	for _, sol := range solutions {
		out = append(out, sol.View())
	}
	return out
}

func (s *SolutionService) List(ctx context.Context, actor Actor, req *SolutionListRequest) ([]models.SolutionView, error) {
	query := s.db.WithContext(ctx).Model(&models.Solution{})

	if actor.IsAdmin() {
		if req.Status != "" {
			query = query.Where("status = ?", req.Status)
		}
	} else {
		query = query.Where("status <> ?", models.SolutionDraft)
	}
	if req.ChallengeID > 0 {
		query = query.Where("challenge_id = ?", req.ChallengeID)
	}

	var solutions []models.Solution
	if err := query.Order("created_at DESC").Order("id DESC").Find(&solutions).Error; err != nil {
		return nil, storeError(err, "solution")
	}
	return views(solutions), nil
}

func (s *SolutionService) ListByOwner(ctx context.Context, ownerID uint) ([]models.SolutionView, error) {
	var solutions []models.Solution
	err := s.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&solutions).Error
	if err != nil {
		return nil, storeError(err, "solution")
	}
	return views(solutions), nil
}

// ListForChallenge returns the non-draft solutions of a challenge to its
// owner or an admin.
func (s *SolutionService) ListForChallenge(ctx context.Context, actor Actor, challengeID uint) ([]models.SolutionView, error) {
	challenge, err := findByID[models.Challenge](s.scope(ctx), challengeID, "challenge")
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.Owns(challenge.CreatedBy) {
		return nil, apperr.Forbidden("only the challenge owner can list its solutions")
	}

	var solutions []models.Solution
	err = s.db.WithContext(ctx).
		Where("challenge_id = ? AND status <> ?", challengeID, models.SolutionDraft).
		Order("created_at DESC").Order("id DESC").
		Find(&solutions).Error
	if err != nil {
		return nil, storeError(err, "solution")
	}
	return views(solutions), nil
}

func (s *SolutionService) GetByID(ctx context.Context, id uint) (*models.Solution, error) {
	return findByID[models.Solution](s.scope(ctx), id, "solution")
}

func (s *SolutionService) GetVisible(ctx context.Context, actor Actor, id uint) (*models.Solution, error) {
	sol, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !SolutionLifecycle.Visible(actor, sol.CreatedBy, sol.Status) {
		return nil, apperr.NotFound("solution not found")
	}
	return sol, nil
}

// Create stores a solution for actor. The submitter may not own the challenge.
func (s *SolutionService) Create(ctx context.Context, actor Actor, req *CreateSolutionRequest) (*models.Solution, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	status, err := SolutionLifecycle.InitialStatus(actor, req.Status)
	if err != nil {
		return nil, err
	}

	challenge, err := findByID[models.Challenge](s.scope(ctx), req.ChallengeID, "challenge")
	if err != nil {
		return nil, err
	}
	if !ChallengeLifecycle.Visible(actor, challenge.CreatedBy, challenge.Status) {
		return nil, apperr.NotFound("challenge not found")
	}
	if actor.Owns(challenge.CreatedBy) {
		return nil, apperr.Forbidden("you cannot submit a solution to your own challenge")
	}

	f := req.SolutionDetails
	solution := models.Solution{
		Title:                   req.Title,
		Description:             req.Description,
		ChallengeID:             req.ChallengeID,
		Axis:                    f.Axis,
		Benefits:                f.Benefits,
		TeamName:                f.TeamName,
		ParticipantType:         f.ParticipantType,
		ProblemSolved:           f.ProblemSolved,
		ContributionObjectives:  f.ContributionObjectives,
		DirectBeneficiaries:     f.DirectBeneficiaries,
		DetailedOperation:       f.DetailedOperation,
		SolutionDifferentials:   f.SolutionDifferentials,
		TerritoryReplication:    f.TerritoryReplication,
		RequiredResources:       f.RequiredResources,
		ValidationPrototyping:   f.ValidationPrototyping,
		SuccessIndicators:       f.SuccessIndicators,
		EstablishedPartnerships: f.EstablishedPartnerships,
		SolutionContinuity:      f.SolutionContinuity,
		LinkedinLink:            f.LinkedinLink,
		InstagramLink:           f.InstagramLink,
		PortfolioLink:           f.PortfolioLink,
		Attachments:             models.StringList(f.Attachments),
		Document1URL:            f.Document1URL,
		Document2URL:            f.Document2URL,
		Document3URL:            f.Document3URL,
		Status:                  status,
	}
	if solution.Attachments == nil {
		solution.Attachments = models.StringList{}
	}
	if !actor.Anonymous() {
		id := actor.ID
		solution.CreatedBy = &id
	}

	if err := s.db.WithContext(ctx).Create(&solution).Error; err != nil {
		return nil, storeError(err, "solution")
	}
	return &solution, nil
}

// Update merge-patches a solution without ownership checks.
func (s *SolutionService) Update(ctx context.Context, id uint, req *UpdateSolutionRequest) (*models.Solution, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Status != nil && !SolutionLifecycle.Valid(*req.Status) {
		return nil, SolutionLifecycle.invalidStatus(*req.Status)
	}
	if req.StatusID != nil && *req.StatusID != 0 {
		if _, err := findByID[models.SolutionStatus](s.scope(ctx), *req.StatusID, "solution status"); err != nil {
			return nil, err
		}
	}
	return patchByID[models.Solution](s.scope(ctx), id, req.patch(), "solution")
}

func (s *SolutionService) UpdateAs(ctx context.Context, actor Actor, id uint, req *UpdateSolutionRequest) (*models.Solution, error) {
	current, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := SolutionLifecycle.CheckEdit(actor, current.CreatedBy, current.Status, req.Status); err != nil {
		return nil, err
	}
	if req.StatusID != nil && !actor.IsAdmin() {
		return nil, apperr.Forbidden("only administrators can assign a solution status")
	}
	if req.Status != nil && *req.Status == models.SolutionSubmitted && current.Status == models.SolutionDraft {
		if err := RequireSubmittable(mergedString(current.Title, req.Title), mergedString(current.Description, req.Description)); err != nil {
			return nil, err
		}
	}
	return s.Update(ctx, id, req)
}

func (s *SolutionService) Submit(ctx context.Context, actor Actor, id uint) (*models.Solution, error) {
	current, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := SolutionLifecycle.CheckSubmit(actor, current.CreatedBy, current.Status, current.Title, current.Description); err != nil {
		return nil, err
	}
	return patchByID[models.Solution](s.scope(ctx), id, Patch{"status": models.SolutionSubmitted}, "solution")
}

// ChangeStatus sets the lifecycle status and/or the admin status label and,
// when requested, notifies the submitter.
func (s *SolutionService) ChangeStatus(ctx context.Context, id uint, req *StatusChangeRequest) (*models.Solution, error) {
	if req.Status == nil && req.StatusID == nil {
		return nil, apperr.Validation("status or status_id is required")
	}

	var label *models.SolutionStatus
	if req.StatusID != nil && *req.StatusID != 0 {
		var err error
		label, err = findByID[models.SolutionStatus](s.scope(ctx), *req.StatusID, "solution status")
		if err != nil {
			return nil, err
		}
	}

	solution, err := s.Update(ctx, id, &UpdateSolutionRequest{Status: req.Status, StatusID: req.StatusID})
	if err != nil {
		return nil, err
	}

	if req.Notify && s.notify != nil {
		statusName, template := solution.Status, ""
		if label != nil {
			statusName, template = label.Name, label.Message
		}
		var submitter *models.User
		if solution.CreatedBy != nil {
			submitter, _ = findByID[models.User](s.scope(ctx), *solution.CreatedBy, "user")
		}
		s.notify.SolutionStatusChanged(ctx, solution, submitter, statusName, template)
	}
	return solution, nil
}

func (s *SolutionService) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.Solution](s.scope(ctx), id, "solution")
}

func (s *SolutionService) DeleteAs(ctx context.Context, actor Actor, id uint) error {
	current, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := SolutionLifecycle.CheckDelete(actor, current.CreatedBy, current.Status); err != nil {
		return err
	}
	return s.Delete(ctx, id)
}
