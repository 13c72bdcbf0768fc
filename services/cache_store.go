package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/utils"

	"github.com/redis/go-redis/v9"
)

// CacheStore is the key-value cache the note cache manager sits on.
// Implementations never surface transport errors: the cache is an
// optimization, not a source of truth, so a failing read degrades to a
// miss and a failing write to a no-op.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Save(ctx context.Context, key string, value string, expiry time.Duration)
	Delete(ctx context.Context, keys ...string) int64
}

// RedisStore implements CacheStore over a shared Redis client. The client
// is created once at startup and is safe for concurrent use.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		log.Printf("Error retrieving key %s: %v", key, err)
		utils.CacheErrorsTotal.Inc()
		return "", false
	}
	return value, true
}

func (s *RedisStore) Save(ctx context.Context, key string, value string, expiry time.Duration) {
	if err := s.client.Set(ctx, key, value, expiry).Err(); err != nil {
		log.Printf("Error saving key %s: %v", key, err)
		utils.CacheErrorsTotal.Inc()
	}
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) int64 {
	if len(keys) == 0 {
		return 0
	}
	removed, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		log.Printf("Error deleting keys %v: %v", keys, err)
		utils.CacheErrorsTotal.Inc()
		return 0
	}
	return removed
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
