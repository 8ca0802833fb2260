package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleAdvanced   = "advanced"
	RoleChallenger = "challenger"
	RoleSolver     = "solver"
)

// User is a registered account. Email is stored lowercased.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:255" json:"full_name"`
	Role         string    `gorm:"size:20;default:solver;index" json:"role"`
	Phone        string    `gorm:"size:30" json:"phone"`
	Organization string    `gorm:"size:255" json:"organization"`
	CpfCnpj      string    `gorm:"column:cpf_cnpj;size:20" json:"cpf_cnpj"`
	AvatarURL    string    `gorm:"size:1000" json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// ValidRole reports whether role is part of the role vocabulary.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAdvanced, RoleChallenger, RoleSolver:
		return true
	}
	return false
}
