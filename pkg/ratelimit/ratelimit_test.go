package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsWithinWindow(t *testing.T) {
	l := NewLimiter(time.Minute, 3)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Other keys are tracked independently
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestLimiterSlidesWindow(t *testing.T) {
	l := NewLimiter(20*time.Millisecond, 1)

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	time.Sleep(25 * time.Millisecond)
	assert.True(t, l.Allow("k"))
}

func TestLimiterReset(t *testing.T) {
	l := NewLimiter(time.Minute, 1)

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	l.Reset("k")
	assert.True(t, l.Allow("k"))
}
