package conversation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisStoreLockIsStablePerSession(t *testing.T) {
	s := NewRedisStore(nil, time.Hour)

	assert.Same(t, s.lock("session-a"), s.lock("session-a"))
	assert.Same(t, s.lock("session-b"), s.lock("session-b"))
}

func TestRedisStoreLockStateIsBounded(t *testing.T) {
	s := NewRedisStore(nil, time.Hour)

	seen := make(map[*sync.Mutex]struct{})
	for i := 0; i < 10_000; i++ {
		seen[s.lock(fmt.Sprintf("session-%d", i))] = struct{}{}
	}

	assert.LessOrEqual(t, len(seen), redisLockShards)
}
