package domain

// SchedulingConfig снапшот конфигурации расписания
// Собирается из app_settings на каждый вызов генератора (без кэширования),
// отсутствующие ключи заполняются дефолтами
type SchedulingConfig struct {
	BusinessHoursStart   string // "09:00"
	BusinessHoursEnd     string // "21:00"
	SaturdayCutoffHour   int    // час (24h), после которого субботние брони в этот же день запрещены
	MinBookingHoursAhead int    // минимальное количество часов между "сейчас" и началом слота
	SlotDurationMinutes  int    // длительность слота в минутах
	SundayBookings       bool   // разрешены ли брони по воскресеньям
}

// DefaultSchedulingConfig возвращает конфигурацию расписания с дефолтными значениями
func DefaultSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		BusinessHoursStart:   DefaultBusinessHoursStart,
		BusinessHoursEnd:     DefaultBusinessHoursEnd,
		SaturdayCutoffHour:   DefaultSaturdayCutoffHour,
		MinBookingHoursAhead: DefaultMinBookingHoursAhead,
		SlotDurationMinutes:  DefaultSlotDurationMinutes,
		SundayBookings:       DefaultSundayBookings,
	}
}

// Validate проверяет бизнес-ограничения конфигурации
// Формат HH:MM проверяет генератор при разборе
func (c *SchedulingConfig) Validate() bool {
	if c.SlotDurationMinutes < MinSlotDurationMinutes || c.SlotDurationMinutes > MaxSlotDurationMinutes {
		return false
	}
	if c.SaturdayCutoffHour < 0 || c.SaturdayCutoffHour > 23 {
		return false
	}
	return c.MinBookingHoursAhead >= 0
}
