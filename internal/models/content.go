package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:500" json:"location"`
	StartDate   string    `gorm:"size:10" json:"start_date"`
	EndDate     string    `gorm:"size:10" json:"end_date"`
	ImageURL    string    `gorm:"size:1000" json:"image_url"`
	Link        string    `gorm:"size:1000" json:"link"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	Summary     string    `gorm:"type:text" json:"summary"`
	Content     string    `gorm:"type:text" json:"content"`
	ImageURL    string    `gorm:"size:1000" json:"image_url"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	AuthorID    *uint     `gorm:"index" json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (News) TableName() string { return "news" }

const (
	TableProgramInfo      = "program_info"
	TableHowToParticipate = "how_to_participate"
)

// ContentSection is the shared shape of program_info and how_to_participate.
// It has no TableName; callers pick the table with db.Table.
type ContentSection struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Section    string    `gorm:"size:100" json:"section"`
	Title      string    `gorm:"size:500;not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	OrderIndex int       `gorm:"default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GeralSingletonID is the fixed primary key of the only GeralSettings row.
const GeralSingletonID = 1

const DefaultContactPhone = "(67) 3318-3500"

// GeralSettings holds site-wide contact and header settings.
type GeralSettings struct {
	ID              uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ContactPhone    string    `gorm:"size:30" json:"contact_phone"`
	ContactEmail    string    `gorm:"size:255" json:"contact_email"`
	Address         string    `gorm:"size:500" json:"address"`
	InstagramURL    string    `gorm:"size:1000" json:"instagram_url"`
	FacebookURL     string    `gorm:"size:1000" json:"facebook_url"`
	LinkedinURL     string    `gorm:"size:1000" json:"linkedin_url"`
	YoutubeURL      string    `gorm:"size:1000" json:"youtube_url"`
	HeaderLogoURL   string    `gorm:"size:1000" json:"header_logo_url"`
	HeaderBannerURL string    `gorm:"size:1000" json:"header_banner_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (GeralSettings) TableName() string { return "geral" }
