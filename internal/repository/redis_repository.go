package repository

import (
	"context"
	"errors"
	"time"

	"farm-advisory/internal/model"

	"github.com/redis/go-redis/v9"
)

// redisKVRepository implements KVRepository as one redis hash per namespace
type redisKVRepository struct {
	client  redis.Cmdable
	hashKey string
	timeout time.Duration
}

// NewRedisKVRepository creates a redis-backed repository. Every key of the
// namespace is a field of the hash named after the namespace.
func NewRedisKVRepository(client redis.Cmdable, namespace string, timeout time.Duration) KVRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &redisKVRepository{
		client:  client,
		hashKey: namespace + ":kv",
		timeout: timeout,
	}
}

func (r *redisKVRepository) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// Get fetches the value stored under key
func (r *redisKVRepository) Get(key string) (string, bool, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	v, err := r.client.HGet(ctx, r.hashKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Put stores value under key
func (r *redisKVRepository) Put(key, value string) error {
	if key == "" {
		return model.ErrEmptyKey
	}
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.HSet(ctx, r.hashKey, key, value).Err()
}

// Delete removes key
func (r *redisKVRepository) Delete(key string) error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.HDel(ctx, r.hashKey, key).Err()
}

// Keys lists the fields of the namespace hash
func (r *redisKVRepository) Keys() ([]string, error) {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.HKeys(ctx, r.hashKey).Result()
}

// Clear drops the namespace hash
func (r *redisKVRepository) Clear() error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.Del(ctx, r.hashKey).Err()
}
