package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		startA types.TimeString
		durA   int
		startB types.TimeString
		durB   int
		buffer int
		want   bool
	}{
		{
			name:   "identical windows conflict",
			startA: "10:00", durA: 60,
			startB: "10:00", durB: 60,
			buffer: 0,
			want:   true,
		},
		{
			name:   "back to back with zero buffer do not conflict",
			startA: "10:00", durA: 60,
			startB: "11:00", durB: 60,
			buffer: 0,
			want:   false,
		},
		{
			name:   "back to back with buffer conflict",
			startA: "10:00", durA: 60,
			startB: "11:00", durB: 60,
			buffer: 15,
			want:   true,
		},
		{
			name:   "separated by exactly the buffer do not conflict",
			startA: "10:00", durA: 60,
			startB: "11:15", durB: 60,
			buffer: 15,
			want:   false,
		},
		{
			name:   "candidate ends just before buffered start",
			startA: "08:45", durA: 60,
			startB: "10:00", durB: 60,
			buffer: 15,
			want:   false,
		},
		{
			name:   "candidate too close before",
			startA: "09:00", durA: 60,
			startB: "10:00", durB: 60,
			buffer: 15,
			want:   true,
		},
		{
			name:   "disjoint windows",
			startA: "09:00", durA: 30,
			startB: "14:00", durB: 30,
			buffer: 30,
			want:   false,
		},
		{
			name:   "containment",
			startA: "10:15", durA: 15,
			startB: "10:00", durB: 120,
			buffer: 0,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.startA, tt.durA, tt.startB, tt.durB, tt.buffer)
			assert.Equal(t, tt.want, got)

			// Проверка симметрии
			mirrored := Overlaps(tt.startB, tt.durB, tt.startA, tt.durA, tt.buffer)
			assert.Equal(t, got, mirrored, "Overlaps must be symmetric")
		})
	}
}

// С буфером 15 минут бронирование 10:00-11:00 должно блокировать все
// часовые кандидаты с 09:00 по 11:00 включительно и не трогать соседние
func TestOverlaps_BufferWindow(t *testing.T) {
	booking := types.TimeString("10:00")

	blocked := []types.TimeString{"09:00", "09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45", "11:00"}
	for _, candidate := range blocked {
		assert.True(t, Overlaps(candidate, 60, booking, 60, 15), "candidate %s must conflict", candidate)
	}

	free := []types.TimeString{"08:45", "11:15"}
	for _, candidate := range free {
		assert.False(t, Overlaps(candidate, 60, booking, 60, 15), "candidate %s must be free", candidate)
	}
}

func TestBookingConflicts_SkipsInactive(t *testing.T) {
	bookings := []*Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: StatusConfirmed},
		{StartTime: "10:00", DurationMinutes: 60, Status: StatusCancelled},
		{StartTime: "10:00", DurationMinutes: 60, Status: StatusCompleted},
		{StartTime: "14:00", DurationMinutes: 60, Status: StatusPaid},
	}

	assert.Equal(t, 1, BookingConflicts("10:00", 60, bookings, 0))
	assert.Equal(t, 0, BookingConflicts("12:00", 60, bookings, 0))
	assert.Equal(t, 1, BookingConflicts("13:30", 60, bookings, 0))
}

func TestHoldConflicts_SkipsExpired(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	holds := []*Hold{
		{StartTime: "14:00", DurationMinutes: 60, ExpiresAt: now.Add(10 * time.Minute)},
		{StartTime: "14:00", DurationMinutes: 60, ExpiresAt: now.Add(-time.Minute)},
	}

	assert.Equal(t, 1, HoldConflicts("14:00", 60, holds, 0, now))
}
