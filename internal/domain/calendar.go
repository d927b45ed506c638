package domain

import (
	"time"

	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

// DayHours is the business-hours record for a single weekday
type DayHours struct {
	Enabled bool
	Open    types.TimeString
	Close   types.TimeString
}

// WeekSchedule holds business hours for every weekday
type WeekSchedule struct {
	Monday    DayHours
	Tuesday   DayHours
	Wednesday DayHours
	Thursday  DayHours
	Friday    DayHours
	Saturday  DayHours
	Sunday    DayHours
}

// ForDate returns the business-hours record for the weekday of date
func (w WeekSchedule) ForDate(date time.Time) DayHours {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// SpecialDayCategory classifies a date-level closure
type SpecialDayCategory string

const (
	SpecialDayHoliday     SpecialDayCategory = "holiday"
	SpecialDayMaintenance SpecialDayCategory = "maintenance"
	SpecialDayCustom      SpecialDayCategory = "custom"
)

// SpecialDay is an explicit date-level override that closes an otherwise-open
// weekday. Its lifecycle is independent of bookings.
type SpecialDay struct {
	ID        int64
	Date      time.Time
	Reason    string
	Category  SpecialDayCategory
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Calendar answers whether a date is open for booking and within which hours.
// It is a pure combination of weekday business hours and a possible
// special-day closure; "closed" is a valid answer, not an error.
type Calendar struct {
	Week WeekSchedule
}

// HoursFor returns the open window for date. The second return value is
// false when the date is closed: an active special day closes the date
// regardless of weekday rules, otherwise the weekday record decides.
func (c Calendar) HoursFor(date time.Time, special *SpecialDay) (DayHours, bool) {
	if special != nil && special.Active {
		return DayHours{}, false
	}

	day := c.Week.ForDate(date)
	if !day.Enabled || day.Open.IsZero() || day.Close.IsZero() {
		return DayHours{}, false
	}
	return day, true
}

// IsOpen reports whether any bookable window exists on date
func (c Calendar) IsOpen(date time.Time, special *SpecialDay) bool {
	_, open := c.HoursFor(date, special)
	return open
}
