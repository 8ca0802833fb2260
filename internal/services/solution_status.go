package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/apperr"
	"gorm.io/gorm"
)

type SolutionStatusService struct {
	db *gorm.DB
}

func NewSolutionStatusService(db *gorm.DB) *SolutionStatusService {
	return &SolutionStatusService{db: db}
}

type CreateSolutionStatusRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Message string `json:"message"`
}

type UpdateSolutionStatusRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Message *string `json:"message"`
}

func (s *SolutionStatusService) List(ctx context.Context) ([]models.SolutionStatus, error) {
	statuses := []models.SolutionStatus{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&statuses).Error; err != nil {
		return nil, storeError(err, "solution status")
	}
	return statuses, nil
}

func (s *SolutionStatusService) GetByID(ctx context.Context, id uint) (*models.SolutionStatus, error) {
	return findByID[models.SolutionStatus](modelScope(s.db, ctx), id, "solution status")
}

func (s *SolutionStatusService) Create(ctx context.Context, req *CreateSolutionStatusRequest) (*models.SolutionStatus, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	status := models.SolutionStatus{Name: req.Name, Message: req.Message}
	if err := s.db.WithContext(ctx).Create(&status).Error; err != nil {
		return nil, storeError(err, "solution status")
	}
	return &status, nil
}

func (s *SolutionStatusService) Update(ctx context.Context, id uint, req *UpdateSolutionStatusRequest) (*models.SolutionStatus, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	p := Patch{}
	SetField(p, "name", req.Name)
	SetField(p, "message", req.Message)
	return patchByID[models.SolutionStatus](modelScope(s.db, ctx), id, p, "solution status")
}

// Delete refuses while any solution still references the status.
func (s *SolutionStatusService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).Model(&models.Solution{}).Where("status_id = ?", id).Count(&refs).Error; err != nil {
		return storeError(err, "solution status")
	}
	if refs > 0 {
		return apperr.Newf(apperr.CodeConflict, "solution status is used by %d solution(s)", refs)
	}
	return deleteByID[models.SolutionStatus](modelScope(s.db, ctx), id, "solution status")
}
