package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/apperr"
	"gorm.io/gorm"
)

type ChallengeService struct {
	db     *gorm.DB
	notify *NotificationService
}

func NewChallengeService(db *gorm.DB, notify *NotificationService) *ChallengeService {
	return &ChallengeService{db: db, notify: notify}
}

type ChallengeListRequest struct {
	Status string `form:"status"`
	Axis   string `form:"axis"`
}

type CreateChallengeRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description" binding:"required"`
	Axis             string   `json:"axis"`
	Modality         string   `json:"modality"`
	Proposer         string   `json:"proposer"`
	ContactEmail     string   `json:"contact_email" binding:"omitempty,email"`
	ContactPhone     string   `json:"contact_phone"`
	RelationshipType string   `json:"relationship_type" binding:"omitempty,oneof=B2G B2C G2G G2A G2C"`
	StartDate        string   `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate          string   `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Deadline         string   `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	ExpectedResults  string   `json:"expected_results"`
	Benefits         string   `json:"benefits"`
	Attachments      []string `json:"attachments"`
	BannerURL        string   `json:"banner_url"`
	Status           string   `json:"status"`
}

// UpdateChallengeRequest is a merge patch; created_by is not patchable.
type UpdateChallengeRequest struct {
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	Axis             *string   `json:"axis"`
	Modality         *string   `json:"modality"`
	Proposer         *string   `json:"proposer"`
	ContactEmail     *string   `json:"contact_email" binding:"omitempty,email|len=0"`
	ContactPhone     *string   `json:"contact_phone"`
	RelationshipType *string   `json:"relationship_type" binding:"omitempty,oneof=B2G B2C G2G G2A G2C|len=0"`
	StartDate        *string   `json:"start_date" binding:"omitempty,datetime=2006-01-02|len=0"`
	EndDate          *string   `json:"end_date" binding:"omitempty,datetime=2006-01-02|len=0"`
	Deadline         *string   `json:"deadline" binding:"omitempty,datetime=2006-01-02|len=0"`
	ExpectedResults  *string   `json:"expected_results"`
	Benefits         *string   `json:"benefits"`
	Attachments      *[]string `json:"attachments"`
	BannerURL        *string   `json:"banner_url"`
	Status           *string   `json:"status"`
}

func (r *UpdateChallengeRequest) patch() Patch {
	p := Patch{}
	SetField(p, "title", r.Title)
	SetField(p, "description", r.Description)
	SetField(p, "axis", r.Axis)
	SetField(p, "modality", r.Modality)
	SetField(p, "proposer", r.Proposer)
	SetField(p, "contact_email", r.ContactEmail)
	SetField(p, "contact_phone", r.ContactPhone)
	SetField(p, "relationship_type", r.RelationshipType)
	SetField(p, "start_date", r.StartDate)
	SetField(p, "end_date", r.EndDate)
	SetField(p, "deadline", r.Deadline)
	SetField(p, "expected_results", r.ExpectedResults)
	SetField(p, "benefits", r.Benefits)
	SetField(p, "banner_url", r.BannerURL)
	SetField(p, "status", r.Status)
	if r.Attachments != nil {
		p["attachments"] = models.StringList(*r.Attachments)
	}
	return p
}

func (s *ChallengeService) scope(ctx context.Context) scope {
	return modelScope(s.db, ctx)
}

// List returns challenges newest first. Drafts are hidden and the status
// filter ignored unless the actor is an admin.
func (s *ChallengeService) List(ctx context.Context, actor Actor, req *ChallengeListRequest) ([]models.Challenge, error) {
	query := s.db.WithContext(ctx).Model(&models.Challenge{})

	if actor.IsAdmin() {
		if req.Status != "" {
			query = query.Where("status = ?", req.Status)
		}
	} else {
		query = query.Where("status <> ?", models.ChallengeDraft)
	}
	if req.Axis != "" {
		query = query.Where("axis = ?", req.Axis)
	}

	challenges := []models.Challenge{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&challenges).Error; err != nil {
		return nil, storeError(err, "challenge")
	}
	return challenges, nil
}

// ListByOwner returns every challenge the actor created, drafts included.
func (s *ChallengeService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Challenge, error) {
	challenges := []models.Challenge{}
	err := s.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at DESC").Order("id DESC").
		Find(&challenges).Error
	if err != nil {
		return nil, storeError(err, "challenge")
	}
	return challenges, nil
}

func (s *ChallengeService) GetByID(ctx context.Context, id uint) (*models.Challenge, error) {
	return findByID[models.Challenge](s.scope(ctx), id, "challenge")
}

// GetVisible hides drafts from everyone but their owner and admins.
func (s *ChallengeService) GetVisible(ctx context.Context, actor Actor, id uint) (*models.Challenge, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ChallengeLifecycle.Visible(actor, c.CreatedBy, c.Status) {
		return nil, apperr.NotFound("challenge not found")
	}
	return c, nil
}

func (s *ChallengeService) Create(ctx context.Context, actor Actor, req *CreateChallengeRequest) (*models.Challenge, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	status, err := ChallengeLifecycle.InitialStatus(actor, req.Status)
	if err != nil {
		return nil, err
	}

	challenge := models.Challenge{
		Title:            req.Title,
		Description:      req.Description,
		Axis:             req.Axis,
		Modality:         req.Modality,
		Proposer:         req.Proposer,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		RelationshipType: req.RelationshipType,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Deadline:         req.Deadline,
		ExpectedResults:  req.ExpectedResults,
		Benefits:         req.Benefits,
		Attachments:      models.StringList(req.Attachments),
		BannerURL:        req.BannerURL,
		Status:           status,
	}
	if challenge.Attachments == nil {
		challenge.Attachments = models.StringList{}
	}
	if !actor.Anonymous() {
		id := actor.ID
		challenge.CreatedBy = &id
	}

	if err := s.db.WithContext(ctx).Create(&challenge).Error; err != nil {
		return nil, storeError(err, "challenge")
	}

	if s.notify != nil {
		var creator *models.User
		if challenge.CreatedBy != nil {
			creator, _ = findByID[models.User](s.scope(ctx), *challenge.CreatedBy, "user")
		}
		s.notify.ChallengeCreated(ctx, &challenge, creator)
	}
	return &challenge, nil
}

// Update merge-patches a challenge without ownership checks.
func (s *ChallengeService) Update(ctx context.Context, id uint, req *UpdateChallengeRequest) (*models.Challenge, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Status != nil && !ChallengeLifecycle.Valid(*req.Status) {
		return nil, ChallengeLifecycle.invalidStatus(*req.Status)
	}
	return patchByID[models.Challenge](s.scope(ctx), id, req.patch(), "challenge")
}

// UpdateAs applies the edit rights of actor before patching.
func (s *ChallengeService) UpdateAs(ctx context.Context, actor Actor, id uint, req *UpdateChallengeRequest) (*models.Challenge, error) {
	current, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := ChallengeLifecycle.CheckEdit(actor, current.CreatedBy, current.Status, req.Status); err != nil {
		return nil, err
	}
	if req.Status != nil && *req.Status == models.ChallengePending && current.Status == models.ChallengeDraft {
		if err := RequireSubmittable(mergedString(current.Title, req.Title), mergedString(current.Description, req.Description)); err != nil {
			return nil, err
		}
	}
	return s.Update(ctx, id, req)
}

// Submit moves the actor's draft to pending.
func (s *ChallengeService) Submit(ctx context.Context, actor Actor, id uint) (*models.Challenge, error) {
	current, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := ChallengeLifecycle.CheckSubmit(actor, current.CreatedBy, current.Status, current.Title, current.Description); err != nil {
		return nil, err
	}
	return patchByID[models.Challenge](s.scope(ctx), id, Patch{"status": models.ChallengePending}, "challenge")
}

func (s *ChallengeService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", id).Delete(&models.Solution{}).Error; err != nil {
			return storeError(err, "solution")
		}
		return deleteByID[models.Challenge](func() *gorm.DB { return tx }, id, "challenge")
	})
}

func (s *ChallengeService) DeleteAs(ctx context.Context, actor Actor, id uint) error {
	current, err := s.GetVisible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := ChallengeLifecycle.CheckDelete(actor, current.CreatedBy, current.Status); err != nil {
		return err
	}
	return s.Delete(ctx, id)
}

func mergedString(stored string, patch *string) string {
	if patch != nil {
		return *patch
	}
	return stored
}
