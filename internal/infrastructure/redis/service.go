package redis

import (
	"context"
	"time"

	"github.com/pathwise/compass/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Service struct {
	client *redis.Client
}

// NewService returns nil when REDIS_URL is not configured; Redis-backed
// features fall back to in-memory alternatives.
func NewService() *Service {
	url := config.GetRedisURL()
	if url == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: config.GetRedisPassword(),
		DB:       0,
	})

	log.Info().Str("addr", url).Msg("Redis service initialised")

	return &Service{client: client}
}

// Set stores a value with an optional expiration
func (s *Service) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

// Delete removes a key
func (s *Service) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// IsNil reports whether err marks a missing key
func IsNil(err error) bool {
	return err == redis.Nil
}

// Ping checks whether Redis is reachable
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the connection
func (s *Service) Close() error {
	return s.client.Close()
}
