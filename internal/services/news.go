package services

import (
	"context"
	"time"

	"github.com/hubinova/backend/internal/models"
	"gorm.io/gorm"
)

type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

type NewsListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CreateNewsRequest struct {
	Title       string     `json:"title" binding:"required"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"image_url"`
	PublishedAt *time.Time `json:"published_at"`
}

type UpdateNewsRequest struct {
	Title       *string    `json:"title"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content"`
	ImageURL    *string    `json:"image_url"`
	PublishedAt *time.Time `json:"published_at"`
}

func (r *UpdateNewsRequest) patch() Patch {
	p := Patch{}
	SetField(p, "title", r.Title)
	SetField(p, "summary", r.Summary)
	SetField(p, "content", r.Content)
	SetField(p, "image_url", r.ImageURL)
	SetField(p, "published_at", r.PublishedAt)
	return p
}

// List returns news by publication date, newest first.
func (s *NewsService) List(ctx context.Context, req *NewsListRequest) ([]models.News, error) {
	query := s.db.WithContext(ctx).Order("published_at DESC").Order("id DESC")
	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}
	news := []models.News{}
	if err := query.Find(&news).Error; err != nil {
		return nil, storeError(err, "news")
	}
	return news, nil
}

func (s *NewsService) GetByID(ctx context.Context, id uint) (*models.News, error) {
	return findByID[models.News](modelScope(s.db, ctx), id, "news")
}

// Create publishes now unless published_at is given. The author is the actor.
func (s *NewsService) Create(ctx context.Context, actor Actor, req *CreateNewsRequest) (*models.News, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	news := models.News{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		PublishedAt: time.Now(),
	}
	if req.PublishedAt != nil {
		news.PublishedAt = *req.PublishedAt
	}
	if !actor.Anonymous() {
		id := actor.ID
		news.AuthorID = &id
	}
	if err := s.db.WithContext(ctx).Create(&news).Error; err != nil {
		return nil, storeError(err, "news")
	}
	return &news, nil
}

func (s *NewsService) Update(ctx context.Context, id uint, req *UpdateNewsRequest) (*models.News, error) {
	return patchByID[models.News](modelScope(s.db, ctx), id, req.patch(), "news")
}

func (s *NewsService) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.News](modelScope(s.db, ctx), id, "news")
}
