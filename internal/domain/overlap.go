package domain

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// Overlaps reports whether two half-open windows [start, start+duration)
// conflict, given a required minimum gap (buffer) between jobs on the same
// truck. The buffer widens each interval on the trailing side, so two jobs
// conflict unless they are separated by at least bufferMinutes:
//
//	startA < endB+buffer AND endA+buffer > startB
//
// The check is symmetric: Overlaps(A, B, buf) == Overlaps(B, A, buf).
// Back-to-back windows with a zero buffer do NOT conflict (half-open math).
func Overlaps(startA types.TimeString, durationA int, startB types.TimeString, durationB int, bufferMinutes int) bool {
	aStart := startA.Minutes()
	aEnd := aStart + durationA
	bStart := startB.Minutes()
	bEnd := bStart + durationB

	return aStart < bEnd+bufferMinutes && aEnd+bufferMinutes > bStart
}

// BookingConflicts counts active bookings whose buffered window overlaps the
// candidate window. Inactive bookings (cancelled, completed) free their slot
// immediately and are skipped.
func BookingConflicts(start types.TimeString, durationMinutes int, bookings []*Booking, bufferMinutes int) int {
	count := 0
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if Overlaps(start, durationMinutes, b.StartTime, b.DurationMinutes, bufferMinutes) {
			count++
		}
	}
	return count
}

// HoldConflicts counts unexpired holds whose buffered window overlaps the
// candidate window. Expired holds never count, even before the sweep has
// deleted them.
func HoldConflicts(start types.TimeString, durationMinutes int, holds []*Hold, bufferMinutes int, now time.Time) int {
	count := 0
	for _, h := range holds {
		if h.IsExpired(now) {
			continue
		}
		if Overlaps(start, durationMinutes, h.StartTime, h.DurationMinutes, bufferMinutes) {
			count++
		}
	}
	return count
}
