package spool

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix   = "uploadslot:spool:"
	DefaultRegistryTTL = time.Hour
)

// RedisRegistry stores one key per spooled path. Keys expire after the TTL,
// so paths abandoned by crashed requests stop passing provenance checks.
type RedisRegistry struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// RedisOption configures RedisRegistry.
type RedisOption func(*RedisRegistry)

func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisRegistry) {
		r.prefix = prefix
	}
}

// WithTTL sets key expiration. Zero keeps keys until removed.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisRegistry) {
		r.ttl = ttl
	}
}

func NewRedisRegistry(client redis.Cmdable, opts ...RedisOption) *RedisRegistry {
	r := &RedisRegistry{
		client: client,
		prefix: DefaultKeyPrefix,
		ttl:    DefaultRegistryTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisRegistry) Add(ctx context.Context, path string) error {
	if err := r.client.Set(ctx, r.prefix+path, 1, r.ttl).Err(); err != nil {
		return errors.Join(ErrRegistryFail, err)
	}
	return nil
}

func (r *RedisRegistry) Has(ctx context.Context, path string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+path).Result()
	if err != nil {
		return false, errors.Join(ErrRegistryFail, err)
	}
	return n > 0, nil
}

func (r *RedisRegistry) Remove(ctx context.Context, path string) error {
	if err := r.client.Del(ctx, r.prefix+path).Err(); err != nil {
		return errors.Join(ErrRegistryFail, err)
	}
	return nil
}
