package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// TTLs for the two read paths: single entities stay cached for an hour,
// per-URL list responses for five minutes.
const (
	EntityTTL = time.Hour
	ListTTL   = 5 * time.Minute
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Key builders. Writes invalidate exactly these keys, so every reader and
// writer must go through them.

func PropertyKey(propertyID int64) string {
	return fmt.Sprintf("property:%d", propertyID)
}

func FavoritesKey(userID int64) string {
	return fmt.Sprintf("favorites:%d", userID)
}

func RecommendationsKey(userID int64) string {
	return fmt.Sprintf("recommendations:%d", userID)
}

// ViewKey caches a GET response under its raw request URI (path + query).
func ViewKey(requestURI string) string {
	return "views:" + requestURI
}

type RedisStore struct {
	client *redis.Client
}

func NewRedis(url, password string, db int) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
