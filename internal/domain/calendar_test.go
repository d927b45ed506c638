package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testWeek() WeekSchedule {
	open := DayHours{Enabled: true, Open: "09:00", Close: "18:00"}
	return WeekSchedule{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  DayHours{Enabled: true, Open: "10:00", Close: "16:00"},
		Sunday:    DayHours{Enabled: false},
	}
}

func TestCalendar_HoursFor(t *testing.T) {
	calendar := Calendar{Week: testWeek()}

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) // понедельник
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	hours, open := calendar.HoursFor(monday, nil)
	assert.True(t, open)
	assert.Equal(t, "09:00", hours.Open.String())
	assert.Equal(t, "18:00", hours.Close.String())

	_, open = calendar.HoursFor(sunday, nil)
	assert.False(t, open)
}

func TestCalendar_HoursFor_SpecialDay(t *testing.T) {
	calendar := Calendar{Week: testWeek()}
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	// Активный особый день закрывает открытый по расписанию день
	special := &SpecialDay{Date: monday, Active: true, Category: SpecialDayHoliday}
	_, open := calendar.HoursFor(monday, special)
	assert.False(t, open)

	// Деактивированный особый день ничего не закрывает
	special.Active = false
	_, open = calendar.HoursFor(monday, special)
	assert.True(t, open)
}

func TestCalendar_HoursFor_EnabledWithoutTimes(t *testing.T) {
	week := testWeek()
	week.Monday = DayHours{Enabled: true} // без open/close день считается закрытым
	calendar := Calendar{Week: week}

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, open := calendar.HoursFor(monday, nil)
	assert.False(t, open)
}

func TestCalendar_IsOpen(t *testing.T) {
	calendar := Calendar{Week: testWeek()}

	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, calendar.IsOpen(saturday, nil))

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	assert.False(t, calendar.IsOpen(sunday, nil))
}
