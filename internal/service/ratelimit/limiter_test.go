package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsBucket(t *testing.T) {
	l := New(2, time.Hour)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestAllowRefills(t *testing.T) {
	l := New(1, time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	assert.True(t, l.Allow())
}

func TestAllowCapsAtCapacity(t *testing.T) {
	l := New(2, time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base.Add(time.Hour) }

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
