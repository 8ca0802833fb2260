package services

import (
	"context"
	"testing"

	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/internal/utils"
	"github.com/hubinova/backend/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *recordingNotifier) {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	rec := &recordingNotifier{}
	db := newTestDB(t)
	return NewAuthService(db, &config.JWTConfig{Secret: "test-secret", ExpireHour: 24}, NewNotificationService(rec, nil)), rec
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, rec := newAuthService(t)

	res, err := svc.Register(ctx, &RegisterRequest{
		Email: "  Maria@Example.com ", Password: "secret1", FullName: "Maria Silva",
		UserType: models.RoleChallenger, Phone: "(67) 99999-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", res.User.Email)
	assert.Equal(t, models.RoleChallenger, res.User.Role)
	assert.NotEqual(t, "secret1", res.User.Password)

	claims, err := utils.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, models.RoleChallenger, claims.Role)

	login, err := svc.Login(ctx, &LoginRequest{Email: "MARIA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	// welcome + login alert
	assert.Len(t, rec.messages(), 2)
}

func TestRegisterDefaultsAndRejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	res, err := svc.Register(ctx, &RegisterRequest{Email: "solver@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSolver, res.User.Role)

	_, err = svc.Register(ctx, &RegisterRequest{Email: "SOLVER@example.com", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	_, err = svc.Register(ctx, &RegisterRequest{Email: "x@example.com", Password: "secret1", Role: models.RoleAdmin})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.Register(ctx, &RegisterRequest{Email: "not-an-email", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.Register(ctx, &RegisterRequest{Email: "short@example.com", Password: "123"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	_, err := svc.Register(ctx, &RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "wrong"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@b.com", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	res, err := svc.Register(ctx, &RegisterRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, res.User.ID, &ChangePasswordRequest{OldPassword: "nope", NewPassword: "secret2"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	require.NoError(t, svc.ChangePassword(ctx, res.User.ID, &ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"}))
	_, err = svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	require.NoError(t, svc.EnsureAdmin(ctx, config.AdminConfig{Email: "root@example.com"}))
	_, err := svc.Login(ctx, &LoginRequest{Email: "root@example.com", Password: "x"})
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))

	require.NoError(t, svc.EnsureAdmin(ctx, config.AdminConfig{Email: "root@example.com", Password: "rootpass"}))
	res, err := svc.Login(ctx, &LoginRequest{Email: "root@example.com", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(db)
	admin := createUser(t, db, "admin@example.com", models.RoleAdmin, "")
	u := createUser(t, db, "u@example.com", models.RoleSolver, "67999991234")
	createUser(t, db, "taken@example.com", models.RoleSolver, "")

	updated, err := svc.Update(ctx, u.ID, &UpdateUserRequest{Role: ptr(models.RoleAdvanced)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdvanced, updated.Role)
	assert.Equal(t, "67999991234", updated.Phone)

	_, err = svc.Update(ctx, u.ID, &UpdateUserRequest{Role: ptr("root")})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = svc.Update(ctx, u.ID, &UpdateUserRequest{Email: ptr("Taken@example.com")})
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	profile, err := svc.UpdateProfile(ctx, u.ID, &UpdateProfileRequest{Phone: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "", profile.Phone)
	assert.Equal(t, models.RoleAdvanced, profile.Role)

	users, err := svc.List(ctx, &UserListRequest{Role: models.RoleAdvanced})
	require.NoError(t, err)
	assert.Len(t, users, 1)

	assert.True(t, apperr.Is(svc.Delete(ctx, actorOf(admin), admin.ID), apperr.CodeForbidden))
	require.NoError(t, svc.Delete(ctx, actorOf(admin), u.ID))
	_, err = svc.GetByID(ctx, u.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
