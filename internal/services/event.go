package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"gorm.io/gorm"
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"link"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02|len=0"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02|len=0"`
	ImageURL    *string `json:"image_url"`
	Link        *string `json:"link"`
}

func (r *UpdateEventRequest) patch() Patch {
	p := Patch{}
	SetField(p, "title", r.Title)
	SetField(p, "description", r.Description)
	SetField(p, "location", r.Location)
	SetField(p, "start_date", r.StartDate)
	SetField(p, "end_date", r.EndDate)
	SetField(p, "image_url", r.ImageURL)
	SetField(p, "link", r.Link)
	return p
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&events).Error; err != nil {
		return nil, storeError(err, "event")
	}
	return events, nil
}

func (s *EventService) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	return findByID[models.Event](modelScope(s.db, ctx), id, "event")
}

func (s *EventService) Create(ctx context.Context, req *CreateEventRequest) (*models.Event, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, storeError(err, "event")
	}
	return &event, nil
}

func (s *EventService) Update(ctx context.Context, id uint, req *UpdateEventRequest) (*models.Event, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return patchByID[models.Event](modelScope(s.db, ctx), id, req.patch(), "event")
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.Event](modelScope(s.db, ctx), id, "event")
}
