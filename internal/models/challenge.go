package models

import "time"

const (
	ChallengeDraft    = "draft"
	ChallengePending  = "pending"
	ChallengeApproved = "approved"
	ChallengeRejected = "rejected"
)

// Challenge is a problem statement published by an organization.
type Challenge struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"size:500;not null" json:"title"`
	Description      string     `gorm:"type:text;not null" json:"description"`
	Axis             string     `gorm:"size:100;index" json:"axis"`
	Modality         string     `gorm:"size:100" json:"modality"`
	Proposer         string     `gorm:"size:255" json:"proposer"`
	ContactEmail     string     `gorm:"size:255" json:"contact_email"`
	ContactPhone     string     `gorm:"size:30" json:"contact_phone"`
	RelationshipType string     `gorm:"size:10" json:"relationship_type"` // B2G, B2C, G2G, G2A, G2C
	StartDate        string     `gorm:"size:10" json:"start_date"`
	EndDate          string     `gorm:"size:10" json:"end_date"`
	Deadline         string     `gorm:"size:10" json:"deadline"`
	ExpectedResults  string     `gorm:"type:text" json:"expected_results"`
	Benefits         string     `gorm:"type:text" json:"benefits"`
	Attachments      StringList `gorm:"type:text" json:"attachments"`
	BannerURL        string     `gorm:"size:1000" json:"banner_url"`
	Status           string     `gorm:"size:20;default:pending;index" json:"status"`
	CreatedBy        *uint      `gorm:"index" json:"created_by"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Challenge) TableName() string { return "challenges" }

func ValidChallengeStatus(s string) bool {
	switch s {
	case ChallengeDraft, ChallengePending, ChallengeApproved, ChallengeRejected:
		return true
	}
	return false
}
