package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hubinova/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore keeps each draft as a JSON string under
// <prefix>:draft:<user>:<entity>:<key> with the store TTL.
type RedisStore struct {
	store  cmdable
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return newRedisStore(client, cfg.Prefix, ttl), nil
}

func newRedisStore(store cmdable, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "hubinova"
	}
	return &RedisStore{store: store, prefix: prefix, ttl: ttl, now: time.Now}
}

func (r *RedisStore) redisKey(key Key) string {
	return r.prefix + ":draft:" + key.String()
}

func (r *RedisStore) Get(ctx context.Context, key Key) (*Draft, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	raw, err := r.store.Get(ctx, r.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

func (r *RedisStore) Put(ctx context.Context, key Key, data json.RawMessage) (*Draft, error) {
	d, err := newDraft(key, data, r.now())
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, r.redisKey(key), encoded, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return d, nil
}

func (r *RedisStore) Delete(ctx context.Context, key Key) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := r.store.Del(ctx, r.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.store.Ping(ctx).Err()
}
