package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestKeyValidate(t *testing.T) {
	tests := []struct {
		key  Key
		want error
	}{
		{Key{UserID: 1, Entity: EntityChallenge, ID: NewKey}, nil},
		{Key{UserID: 1, Entity: EntitySolution, ID: "42"}, nil},
		{Key{UserID: 1, Entity: "news", ID: NewKey}, ErrInvalidEntity},
		{Key{UserID: 1, Entity: EntitySolution, ID: "0"}, ErrInvalidKey},
		{Key{UserID: 1, Entity: EntitySolution, ID: "abc"}, ErrInvalidKey},
	}
	for _, tt := range tests {
		if got := tt.key.Validate(); !errors.Is(got, tt.want) {
			t.Errorf("Validate(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	key := Key{UserID: 3, Entity: EntityChallenge, ID: NewKey}

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	saved, err := store.Put(ctx, key, json.RawMessage(`{"title":"Half done"}`))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if saved.Key != NewKey || saved.Entity != EntityChallenge {
		t.Fatalf("unexpected draft %+v", saved)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got.Data) != `{"title":"Half done"}` {
		t.Fatalf("unexpected data %s", got.Data)
	}

	other := Key{UserID: 4, Entity: EntityChallenge, ID: NewKey}
	if _, err := store.Get(ctx, other); !errors.Is(err, ErrNotFound) {
		t.Fatalf("drafts must be per user, got %v", err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	now := time.Now()
	store.now = func() time.Time { return now }
	key := RecordKey(1, EntitySolution, 9)

	if _, err := store.Put(ctx, key, json.RawMessage(`{}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	now = now.Add(2 * time.Hour)
	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired draft, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expired entry should be dropped, have %d", store.Len())
	}
}

func TestPutRejectsNonObjects(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	key := Key{UserID: 1, Entity: EntitySolution, ID: NewKey}
	for _, raw := range []string{`[]`, `"text"`, `null`, `{bad`} {
		if _, err := store.Put(context.Background(), key, json.RawMessage(raw)); !errors.Is(err, ErrInvalidData) {
			t.Errorf("Put(%s) = %v, want ErrInvalidData", raw, err)
		}
	}
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	store := newRedisStore(mock, "test", 24*time.Hour)
	key := Key{UserID: 5, Entity: EntitySolution, ID: "12"}

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Put(ctx, key, json.RawMessage(`{"team_name":"Alpha"}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if ttl := mock.ttls["test:draft:5:solution:12"]; ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got.Data) != `{"team_name":"Alpha"}` {
		t.Fatalf("unexpected data %s", got.Data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := mock.data["test:draft:5:solution:12"]; ok {
		t.Fatalf("key should be deleted")
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

type mockCmdable struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
