package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// #region redis-store

// RedisStoreConfig configures the Redis-backed snapshot store.
type RedisStoreConfig struct {
	Prefix string        // key prefix, default "sim:session"
	TTL    time.Duration // snapshot expiry, 0 = no expiry
}

// RedisStore persists snapshots as JSON values in Redis, one key per
// session. Works with any go-redis universal client.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps an existing client. The caller owns the client's
// lifecycle.
func NewRedisStore(client redis.UniversalClient, config ...RedisStoreConfig) *RedisStore {
	cfg := RedisStoreConfig{Prefix: "sim:session"}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "sim:session"
	}
	return &RedisStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

func (r *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.ID, err)
	}
	return r.client.Set(ctx, r.key(snap.ID), data, r.ttl).Err()
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", id, err)
	}
	return &snap, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

var _ Store = (*RedisStore)(nil)
var _ Store = (*MemoryStore)(nil)

// #endregion redis-store
