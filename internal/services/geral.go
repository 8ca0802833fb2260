package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GeralService manages the site settings singleton row.
type GeralService struct {
	db *gorm.DB
}

func NewGeralService(db *gorm.DB) *GeralService {
	return &GeralService{db: db}
}

type UpdateGeralRequest struct {
	ContactPhone    *string `json:"contact_phone"`
	ContactEmail    *string `json:"contact_email" binding:"omitempty,email|len=0"`
	Address         *string `json:"address"`
	InstagramURL    *string `json:"instagram_url"`
	FacebookURL     *string `json:"facebook_url"`
	LinkedinURL     *string `json:"linkedin_url"`
	YoutubeURL      *string `json:"youtube_url"`
	HeaderLogoURL   *string `json:"header_logo_url"`
	HeaderBannerURL *string `json:"header_banner_url"`
}

func (r *UpdateGeralRequest) patch() Patch {
	p := Patch{}
	SetField(p, "contact_phone", r.ContactPhone)
	SetField(p, "contact_email", r.ContactEmail)
	SetField(p, "address", r.Address)
	SetField(p, "instagram_url", r.InstagramURL)
	SetField(p, "facebook_url", r.FacebookURL)
	SetField(p, "linkedin_url", r.LinkedinURL)
	SetField(p, "youtube_url", r.YoutubeURL)
	SetField(p, "header_logo_url", r.HeaderLogoURL)
	SetField(p, "header_banner_url", r.HeaderBannerURL)
	return p
}

// Get returns the settings row, creating it with defaults on first use.
// The insert targets the fixed id and ignores conflicts, so concurrent first
// reads all end up on the same row.
func (s *GeralService) Get(ctx context.Context) (*models.GeralSettings, error) {
	seed := models.GeralSettings{
		ID:           models.GeralSingletonID,
		ContactPhone: models.DefaultContactPhone,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error
	if err != nil {
		return nil, storeError(err, "settings")
	}
	return findByID[models.GeralSettings](modelScope(s.db, ctx), models.GeralSingletonID, "settings")
}

func (s *GeralService) Update(ctx context.Context, req *UpdateGeralRequest) (*models.GeralSettings, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}
	return patchByID[models.GeralSettings](modelScope(s.db, ctx), models.GeralSingletonID, req.patch(), "settings")
}
