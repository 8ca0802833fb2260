package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/internal/utils"
	"github.com/hubinova/backend/pkg/apperr"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
	notify    *NotificationService
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig, notify *NotificationService) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg, notify: notify}
}

// RegisterRequest accepts the role under either user_type or role. Admin
// accounts cannot self-register.
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FullName     string `json:"full_name"`
	UserType     string `json:"user_type" binding:"omitempty,oneof=challenger solver advanced"`
	Role         string `json:"role" binding:"omitempty,oneof=challenger solver advanced"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	CpfCnpj      string `json:"cpf_cnpj"`
	AvatarURL    string `json:"avatar_url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) issue(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to sign token")
	}
	return &AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	role := req.UserType
	if role == "" {
		role = req.Role
	}
	if role == "" {
		role = models.RoleSolver
	}

	email := normalizeEmail(req.Email)
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, storeError(err, "user")
	}
	if count > 0 {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to hash password")
	}

	user := models.User{
		Email:        email,
		Password:     hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		Phone:        req.Phone,
		Organization: req.Organization,
		CpfCnpj:      req.CpfCnpj,
		AvatarURL:    req.AvatarURL,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, storeError(err, "user")
	}

	s.notify.Welcome(ctx, &user)
	return s.issue(&user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, storeError(err, "user")
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	s.notify.LoginAlert(ctx, &user)
	return s.issue(&user)
}

// Me returns the account behind a token.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return findByID[models.User](modelScope(s.db, ctx), userID, "user")
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return apperr.Validation("incorrect old password")
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "failed to hash password")
	}
	_, err = patchByID[models.User](modelScope(s.db, ctx), userID, Patch{"password": hash}, "user")
	return err
}

// EnsureAdmin seeds the configured admin account. It does nothing unless both
// email and password are configured.
func (s *AuthService) EnsureAdmin(ctx context.Context, admin config.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		return nil
	}
	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	return models.SeedAdmin(s.db.WithContext(ctx), admin.Email, hash)
}
