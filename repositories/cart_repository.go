package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"aidla/config"
	"aidla/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository is the raw key-value storage behind the cart store. No other
// package touches the storage key directly; Get returns (nil, nil) for a
// missing entry.
type CartRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// NewCartRepository returns Redis-backed storage when Redis is connected and
// falls back to in-process storage otherwise.
func NewCartRepository() CartRepository {
	if models.RedisClient != nil {
		return &RedisCartRepository{client: models.RedisClient, ttl: config.AppConfig.CartTTL}
	}
	return NewMemoryCartRepository()
}

type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisCartRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisCartRepository) Set(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisCartRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

type MemoryCartRepository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{entries: map[string][]byte{}}
}

func (r *MemoryCartRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.entries[key]
	if !ok {
		return nil, nil
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

func (r *MemoryCartRepository) Set(ctx context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	r.entries[key] = copied
	return nil
}

func (r *MemoryCartRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}
