package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"gorm.io/gorm"
)

// ContentService serves one ordered content table (program info or
// how-to-participate). Both share the ContentSection shape.
type ContentService struct {
	db    *gorm.DB
	table string
	name  string
}

func NewContentService(db *gorm.DB, table string) *ContentService {
	name := "section"
	switch table {
	case models.TableProgramInfo:
		name = "program info section"
	case models.TableHowToParticipate:
		name = "how to participate section"
	}
	return &ContentService{db: db, table: table, name: name}
}

type ContentListRequest struct {
	Section string `form:"section"`
}

type CreateContentRequest struct {
	Section    string `json:"section"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	OrderIndex int    `json:"order_index"`
}

type UpdateContentRequest struct {
	Section    *string `json:"section"`
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	OrderIndex *int    `json:"order_index"`
}

func (r *UpdateContentRequest) patch() Patch {
	p := Patch{}
	SetField(p, "section", r.Section)
	SetField(p, "title", r.Title)
	SetField(p, "content", r.Content)
	SetField(p, "order_index", r.OrderIndex)
	return p
}

func (s *ContentService) scope(ctx context.Context) scope {
	return tableScope(s.db, ctx, s.table)
}

func (s *ContentService) List(ctx context.Context, req *ContentListRequest) ([]models.ContentSection, error) {
	query := s.scope(ctx)()
	if req.Section != "" {
		query = query.Where("section = ?", req.Section)
	}
	sections := []models.ContentSection{}
	if err := query.Order("order_index ASC").Order("id ASC").Find(&sections).Error; err != nil {
		return nil, storeError(err, s.name)
	}
	return sections, nil
}

func (s *ContentService) GetByID(ctx context.Context, id uint) (*models.ContentSection, error) {
	return findByID[models.ContentSection](s.scope(ctx), id, s.name)
}

func (s *ContentService) Create(ctx context.Context, req *CreateContentRequest) (*models.ContentSection, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	section := models.ContentSection{
		Section:    req.Section,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	}
	if err := s.scope(ctx)().Create(&section).Error; err != nil {
		return nil, storeError(err, s.name)
	}
	return &section, nil
}

func (s *ContentService) Update(ctx context.Context, id uint, req *UpdateContentRequest) (*models.ContentSection, error) {
	return patchByID[models.ContentSection](s.scope(ctx), id, req.patch(), s.name)
}

func (s *ContentService) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.ContentSection](s.scope(ctx), id, s.name)
}
