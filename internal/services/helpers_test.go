package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, "warn")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps sqlite writers from tripping over table locks.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email, role, phone string) *models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", FullName: "Test User", Role: role, Phone: phone}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func actorOf(u *models.User) Actor {
	return Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}

func ptr[T any](v T) *T { return &v }

type sentMessage struct {
	Phone   string
	Message string
}

// recordingNotifier captures messages instead of sending them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, phone, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMessage{Phone: phone, Message: message})
	return r.err
}

func (r *recordingNotifier) messages() []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMessage(nil), r.sent...)
}
