package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(time.Minute, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Other keys have their own counters.
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestLimiterWindowExpiry(t *testing.T) {
	l := NewLimiter(10*time.Millisecond, 1)

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, l.Allow("k"))
}

func TestGetRemaining(t *testing.T) {
	l := NewLimiter(time.Minute, 3)

	assert.Equal(t, 3, l.GetRemaining("k"))
	l.Allow("k")
	assert.Equal(t, 2, l.GetRemaining("k"))
}
