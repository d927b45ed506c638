package domain

import "time"

// SchedulingConfig holds the tunable parameters of the scheduling core.
// It is loaded from persistence (single row, admin-managed) and passed
// explicitly into the calculators, never read from ambient global state.
type SchedulingConfig struct {
	ID                      int64
	SlotGranularityMinutes  int // step between candidate slot starts
	BufferMinutes           int // required gap between jobs on the same truck (travel/setup)
	HoldTTLMinutes          int // lifetime of a checkout hold
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HoldTTL returns the hold lifetime as a duration
func (c *SchedulingConfig) HoldTTL() time.Duration {
	return time.Duration(c.HoldTTLMinutes) * time.Minute
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *SchedulingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// DefaultSchedulingConfig returns the configuration used when no row is persisted yet
func DefaultSchedulingConfig() *SchedulingConfig {
	return &SchedulingConfig{
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		BufferMinutes:           DefaultBufferMinutes,
		HoldTTLMinutes:          DefaultHoldTTLMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
