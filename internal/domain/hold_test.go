package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldIsExpired(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	live := &Hold{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, live.IsExpired(now))

	// Граница совпадает с чисткой в хранилище: expires_at <= now
	boundary := &Hold{ExpiresAt: now}
	assert.True(t, boundary.IsExpired(now))

	stale := &Hold{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, stale.IsExpired(now))
}

func TestHoldEndTime(t *testing.T) {
	h := &Hold{StartTime: "10:00", DurationMinutes: 90}

	end, err := h.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "11:30", end.String())
}
