package models

import (
	"errors"
	"time"

	"github.com/fleetbright/FB-SchedulingService/internal/domain"
	"github.com/fleetbright/FB-SchedulingService/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidCategory возвращается при некорректной категории особого дня
	ErrInvalidCategory = errors.New("invalid special day category")
)

// Request модели

// UpdateDayHoursRequest запрос на обновление часов работы дня недели
type UpdateDayHoursRequest struct {
	Weekday string `json:"weekday"` // "monday" .. "sunday"
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`  // "HH:MM", игнорируется при enabled=false
	Close   string `json:"close"` // "HH:MM", игнорируется при enabled=false
}

// CreateSpecialDayRequest запрос на закрытие даты
type CreateSpecialDayRequest struct {
	Date     time.Time `json:"date"`
	Reason   string    `json:"reason"`
	Category string    `json:"category"` // holiday | maintenance | custom
}

// UpdateConfigRequest запрос на обновление параметров планировщика
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	SlotGranularityMinutes  *int `json:"slotGranularityMinutes,omitempty"`
	BufferMinutes           *int `json:"bufferMinutes,omitempty"`
	HoldTTLMinutes          *int `json:"holdTtlMinutes,omitempty"`
	AdvanceBookingDays      *int `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int `json:"minBookingNoticeMinutes,omitempty"`
}

// Response модели

// DayHoursResponse часы работы одного дня недели
type DayHoursResponse struct {
	Enabled bool   `json:"enabled"`
	Open    string `json:"open,omitempty"`  // "HH:MM"
	Close   string `json:"close,omitempty"` // "HH:MM"
}

// WeekScheduleResponse часы работы на всю неделю
type WeekScheduleResponse struct {
	Monday    DayHoursResponse `json:"monday"`
	Tuesday   DayHoursResponse `json:"tuesday"`
	Wednesday DayHoursResponse `json:"wednesday"`
	Thursday  DayHoursResponse `json:"thursday"`
	Friday    DayHoursResponse `json:"friday"`
	Saturday  DayHoursResponse `json:"saturday"`
	Sunday    DayHoursResponse `json:"sunday"`
}

// SpecialDayResponse ответ с данными особого дня
type SpecialDayResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"` // "2026-08-31"
	Reason   string `json:"reason"`
	Category string `json:"category"`
	Active   bool   `json:"active"`
}

// SpecialDayListResponse ответ со списком особых дней
type SpecialDayListResponse struct {
	SpecialDays []SpecialDayResponse `json:"specialDays"`
}

// ConfigResponse ответ с параметрами планировщика
type ConfigResponse struct {
	SlotGranularityMinutes  int `json:"slotGranularityMinutes"`
	BufferMinutes           int `json:"bufferMinutes"`
	HoldTTLMinutes          int `json:"holdTtlMinutes"`
	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`
}

// Методы конвертации

// ToDomainWeekday конвертирует строку в time.Weekday с валидацией
func ToDomainWeekday(weekday string) (time.Weekday, error) {
	switch weekday {
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return 0, ErrInvalidWeekday
	}
}

// ToDomainDayHours конвертирует request в domain модель с валидацией времени
func (r *UpdateDayHoursRequest) ToDomainDayHours() (domain.DayHours, error) {
	if !r.Enabled {
		return domain.DayHours{Enabled: false}, nil
	}

	open, err := types.NewTimeStringFromString(r.Open)
	if err != nil {
		return domain.DayHours{}, err
	}

	closeTime, err := types.NewTimeStringFromString(r.Close)
	if err != nil {
		return domain.DayHours{}, err
	}

	return domain.DayHours{
		Enabled: true,
		Open:    open,
		Close:   closeTime,
	}, nil
}

// ToDomainCategory конвертирует строку в категорию особого дня с валидацией
func ToDomainCategory(category string) (domain.SpecialDayCategory, error) {
	c := domain.SpecialDayCategory(category)

	switch c {
	case domain.SpecialDayHoliday, domain.SpecialDayMaintenance, domain.SpecialDayCustom:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

// FromDomainDayHours конвертирует domain модель в DTO
func FromDomainDayHours(d domain.DayHours) DayHoursResponse {
	resp := DayHoursResponse{Enabled: d.Enabled}
	if d.Enabled {
		resp.Open = d.Open.String()
		resp.Close = d.Close.String()
	}
	return resp
}

// FromDomainWeekSchedule конвертирует domain модель в DTO
func FromDomainWeekSchedule(w *domain.WeekSchedule) *WeekScheduleResponse {
	if w == nil {
		return nil
	}

	return &WeekScheduleResponse{
		Monday:    FromDomainDayHours(w.Monday),
		Tuesday:   FromDomainDayHours(w.Tuesday),
		Wednesday: FromDomainDayHours(w.Wednesday),
		Thursday:  FromDomainDayHours(w.Thursday),
		Friday:    FromDomainDayHours(w.Friday),
		Saturday:  FromDomainDayHours(w.Saturday),
		Sunday:    FromDomainDayHours(w.Sunday),
	}
}

// FromDomainSpecialDay конвертирует domain модель в DTO
func FromDomainSpecialDay(d *domain.SpecialDay) *SpecialDayResponse {
	if d == nil {
		return nil
	}

	return &SpecialDayResponse{
		ID:       d.ID,
		Date:     d.Date.Format(domain.DateFormat),
		Reason:   d.Reason,
		Category: string(d.Category),
		Active:   d.Active,
	}
}

// FromDomainSpecialDayList конвертирует список domain моделей в DTO
func FromDomainSpecialDayList(days []*domain.SpecialDay) *SpecialDayListResponse {
	if days == nil {
		return &SpecialDayListResponse{
			SpecialDays: []SpecialDayResponse{},
		}
	}

	resp := &SpecialDayListResponse{
		SpecialDays: make([]SpecialDayResponse, len(days)),
	}

	for i, day := range days {
		if dayResp := FromDomainSpecialDay(day); dayResp != nil {
			resp.SpecialDays[i] = *dayResp
		}
	}

	return resp
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SchedulingConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		SlotGranularityMinutes:  c.SlotGranularityMinutes,
		BufferMinutes:           c.BufferMinutes,
		HoldTTLMinutes:          c.HoldTTLMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
	}
}
