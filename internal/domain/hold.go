package domain

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// Hold is a short-lived, identity-less soft reservation that keeps a slot
// from being raced away while a customer completes checkout. It is advisory:
// booking confirmation re-checks conflicts regardless of any prior hold.
//
// Lifecycle: created -> released | expired | consumed by confirmation.
// Expiry is lazy, detected by comparing ExpiresAt at read time, plus a
// periodic sweep that deletes stale rows.
type Hold struct {
	ID              int64
	Token           string // opaque token returned to the client
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ResourceID      *int64
	ExpiresAt       time.Time
	CreatedAt       time.Time
}

// IsExpired reports whether the hold no longer counts as a conflict.
// A hold expires at exactly ExpiresAt, matching the store which drops
// rows with expires_at <= now
func (h *Hold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

// EndTime returns the end of the held window (exclusive)
func (h *Hold) EndTime() (types.TimeString, error) {
	return h.StartTime.AddMinutes(h.DurationMinutes)
}
