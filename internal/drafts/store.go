// Package drafts keeps unsubmitted form state per user on the server so an
// edit can be resumed from another device.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hubinova/backend/internal/config"
	"github.com/hubinova/backend/pkg/logger"
)

const (
	EntityChallenge = "challenge"
	EntitySolution  = "solution"

	// NewKey addresses the form of a record that does not exist yet.
	NewKey = "new"

	maxDataBytes = 1 << 20
)

var (
	ErrNotFound      = errors.New("draft not found")
	ErrInvalidEntity = errors.New("entity must be challenge or solution")
	ErrInvalidKey    = errors.New("key must be a record id or \"new\"")
	ErrTooLarge      = errors.New("draft data too large")
	ErrInvalidData   = errors.New("draft data must be a JSON object")
)

// Key identifies one draft: the owner, the entity type and either a record id
// or NewKey.
type Key struct {
	UserID uint
	Entity string
	ID     string
}

func (k Key) Validate() error {
	if k.Entity != EntityChallenge && k.Entity != EntitySolution {
		return ErrInvalidEntity
	}
	if k.ID == NewKey {
		return nil
	}
	if id, err := strconv.ParseUint(k.ID, 10, 64); err != nil || id == 0 {
		return ErrInvalidKey
	}
	return nil
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%s:%s", k.UserID, k.Entity, k.ID)
}

// RecordKey is the draft key of an existing record.
func RecordKey(userID uint, entity string, id uint) Key {
	return Key{UserID: userID, Entity: entity, ID: strconv.FormatUint(uint64(id), 10)}
}

type Draft struct {
	Entity    string          `json:"entity"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Store interface {
	Get(ctx context.Context, key Key) (*Draft, error)
	Put(ctx context.Context, key Key, data json.RawMessage) (*Draft, error)
	Delete(ctx context.Context, key Key) error
}

func newDraft(key Key, data json.RawMessage, now time.Time) (*Draft, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if len(data) > maxDataBytes {
		return nil, ErrTooLarge
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, ErrInvalidData
	}
	return &Draft{Entity: key.Entity, Key: key.ID, Data: data, UpdatedAt: now.UTC()}, nil
}

// New returns a Redis-backed store when a URL is configured and an in-memory
// one otherwise.
func New(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (Store, error) {
	if cfg.URL == "" {
		logger.Info().Dur("ttl", ttl).Msg("[Drafts] using in-memory store")
		return NewMemoryStore(ttl), nil
	}
	store, err := NewRedisStore(ctx, cfg, ttl)
	if err != nil {
		return nil, err
	}
	logger.Info().Dur("ttl", ttl).Msg("[Drafts] using redis store")
	return store, nil
}
