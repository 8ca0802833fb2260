package drafts

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	draft     Draft
	expiresAt time.Time
}

// MemoryStore holds drafts in process. Entries expire lazily on read and are
// swept on write.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[Key]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[Key]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Get(ctx context.Context, key Key) (*Draft, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, ErrNotFound
	}
	d := e.draft
	return &d, nil
}

func (m *MemoryStore) Put(ctx context.Context, key Key, data json.RawMessage) (*Draft, error) {
	now := m.now()
	d, err := newDraft(key, data, now)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = memoryEntry{draft: *d, expiresAt: now.Add(m.ttl)}
	return d, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key Key) error {
	if err := key.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
