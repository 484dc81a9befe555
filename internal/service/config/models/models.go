package models

import (
	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// BusinessHours рабочие часы мойки
type BusinessHours struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "21:00"
}

// SchedulingConfigResponse ответ с конфигурацией расписания
type SchedulingConfigResponse struct {
	BusinessHours        BusinessHours `json:"businessHours"`
	SaturdayCutoffHour   int           `json:"saturdayCutoffHour"`
	MinBookingHoursAhead int           `json:"minBookingHoursAhead"`
	SlotDurationMinutes  int           `json:"slotDuration"`
	SundayBookings       bool          `json:"sundayBookings"`
}

// UpdateSchedulingConfigRequest запрос на обновление конфигурации
// Указываются только изменяемые поля, остальные сохраняют текущее значение
type UpdateSchedulingConfigRequest struct {
	StaffID   int64   `json:"-"`
	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`

	BusinessHours        *BusinessHours `json:"businessHours,omitempty"`
	SaturdayCutoffHour   *int           `json:"saturdayCutoffHour,omitempty"`
	MinBookingHoursAhead *int           `json:"minBookingHoursAhead,omitempty"`
	SlotDurationMinutes  *int           `json:"slotDuration,omitempty"`
	SundayBookings       *bool          `json:"sundayBookings,omitempty"`
}

// HasChanges возвращает true, если запрос меняет хотя бы одно поле
func (r *UpdateSchedulingConfigRequest) HasChanges() bool {
	return r.BusinessHours != nil ||
		r.SaturdayCutoffHour != nil ||
		r.MinBookingHoursAhead != nil ||
		r.SlotDurationMinutes != nil ||
		r.SundayBookings != nil
}

// FromDomainConfig конвертирует domain конфигурацию в DTO
func FromDomainConfig(cfg domain.SchedulingConfig) *SchedulingConfigResponse {
	return &SchedulingConfigResponse{
		BusinessHours: BusinessHours{
			Start: cfg.BusinessHoursStart,
			End:   cfg.BusinessHoursEnd,
		},
		SaturdayCutoffHour:   cfg.SaturdayCutoffHour,
		MinBookingHoursAhead: cfg.MinBookingHoursAhead,
		SlotDurationMinutes:  cfg.SlotDurationMinutes,
		SundayBookings:       cfg.SundayBookings,
	}
}

// ApplyTo накладывает изменения запроса на текущую конфигурацию
func (r *UpdateSchedulingConfigRequest) ApplyTo(cfg domain.SchedulingConfig) domain.SchedulingConfig {
	if r.BusinessHours != nil {
		cfg.BusinessHoursStart = r.BusinessHours.Start
		cfg.BusinessHoursEnd = r.BusinessHours.End
	}
	if r.SaturdayCutoffHour != nil {
		cfg.SaturdayCutoffHour = *r.SaturdayCutoffHour
	}
	if r.MinBookingHoursAhead != nil {
		cfg.MinBookingHoursAhead = *r.MinBookingHoursAhead
	}
	if r.SlotDurationMinutes != nil {
		cfg.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.SundayBookings != nil {
		cfg.SundayBookings = *r.SundayBookings
	}
	return cfg
}
