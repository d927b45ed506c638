package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultBufferMinutes           = 15
	DefaultHoldTTLMinutes          = 15
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MinBufferMinutes          = 0
	MaxBufferMinutes          = 180
	MinHoldTTLMinutes         = 1
	MaxHoldTTLMinutes         = 120
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365
	MaxDurationMinutes        = 720 // longest bookable job, 12 hours
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих слот при проверке конфликтов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusOnHold,
	StatusConfirmed,
	StatusPaid,
}

// InactiveStatuses список статусов, освобождающих слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
