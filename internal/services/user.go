package services

import (
	"context"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/internal/utils"
	"github.com/hubinova/backend/pkg/apperr"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListRequest struct {
	Role   string `form:"role"`
	Search string `form:"search"`
}

// UpdateProfileRequest is what a user may change on their own account.
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	Organization *string `json:"organization"`
	CpfCnpj      *string `json:"cpf_cnpj"`
	AvatarURL    *string `json:"avatar_url"`
}

func (r *UpdateProfileRequest) patch() Patch {
	p := Patch{}
	SetField(p, "full_name", r.FullName)
	SetField(p, "phone", r.Phone)
	SetField(p, "organization", r.Organization)
	SetField(p, "cpf_cnpj", r.CpfCnpj)
	SetField(p, "avatar_url", r.AvatarURL)
	return p
}

// UpdateUserRequest is the admin edit, which may also change role, email and
// reset the password.
type UpdateUserRequest struct {
	UpdateProfileRequest
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin advanced challenger solver"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (s *UserService) List(ctx context.Context, req *UserListRequest) ([]models.User, error) {
	query := s.db.WithContext(ctx).Model(&models.User{})
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}
	users := []models.User{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, storeError(err, "user")
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return findByID[models.User](modelScope(s.db, ctx), id, "user")
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, req *UpdateProfileRequest) (*models.User, error) {
	return patchByID[models.User](modelScope(s.db, ctx), id, req.patch(), "user")
}

func (s *UserService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	p := req.UpdateProfileRequest.patch()
	if req.Email != nil {
		p["email"] = normalizeEmail(*req.Email)
	}
	SetField(p, "role", req.Role)
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, err, "failed to hash password")
		}
		p["password"] = hash
	}
	return patchByID[models.User](modelScope(s.db, ctx), id, p, "user")
}

// Delete removes an account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uint) error {
	if actor.ID == id {
		return apperr.Forbidden("you cannot delete your own account")
	}
	return deleteByID[models.User](modelScope(s.db, ctx), id, "user")
}
