package domain

import "github.com/fleetbright/FB-SchedulingService/pkg/types"

// AvailableSlot represents a bookable start time offered to a customer
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Label           string // human-readable, e.g. "09:00 – 10:00"
}
