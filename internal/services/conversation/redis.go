package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/pathwise/compass/internal/infrastructure/redis"
)

const (
	redisKeyPrefix  = "compass:session:"
	redisLockShards = 64
)

// RedisStore keeps each history as one JSON-encoded turn list with a TTL.
// Appends are read-modify-write, serialized through a fixed shard of mutexes
// keyed by session id hash, so lock state stays bounded no matter how many
// sessions pass through; this service is the only writer of these keys.
type RedisStore struct {
	redisService *redis.Service
	ttl          time.Duration
	locks        [redisLockShards]sync.Mutex
}

func NewRedisStore(redisService *redis.Service, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redisService: redisService,
		ttl:          ttl,
	}
}

func (s *RedisStore) lock(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%redisLockShards]
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, msgs ...Message) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	turns, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	turns = append(turns, msgs...)
	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	return s.redisService.Set(ctx, redisKeyPrefix+sessionID, string(data), s.ttl)
}

func (s *RedisStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	return s.load(ctx, sessionID)
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	return s.redisService.Delete(ctx, redisKeyPrefix+sessionID)
}

func (s *RedisStore) load(ctx context.Context, sessionID string) ([]Message, error) {
	data, err := s.redisService.Get(ctx, redisKeyPrefix+sessionID)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var turns []Message
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return turns, nil
}
