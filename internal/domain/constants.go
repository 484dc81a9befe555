package domain

// Дефолтные значения конфигурации расписания
// Используются, когда ключ отсутствует в app_settings
const (
	DefaultBusinessHoursStart   = "09:00"
	DefaultBusinessHoursEnd     = "21:00"
	DefaultSaturdayCutoffHour   = 18
	DefaultMinBookingHoursAhead = 6
	DefaultSlotDurationMinutes  = 30
	DefaultSundayBookings       = false

	// DefaultRenewalReminderDays за сколько дней до окончания подписки отправляется напоминание
	DefaultRenewalReminderDays = 5
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MaxBlockReasonLength   = 500
	MaxCancelReasonLength  = 500
	MaxCustomerNameLength  = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ключи конфигурации расписания в app_settings
const (
	SettingBusinessHours        = "scheduling.businessHours"
	SettingSaturdayCutoffHour   = "scheduling.saturdayCutoffHour"
	SettingMinBookingHoursAhead = "scheduling.minBookingHoursAhead"
	SettingSlotDuration         = "scheduling.slotDuration"
	SettingSundayBookings       = "scheduling.sundayBookings"
	SettingRenewalReminderDays  = "booking.subscriptionRenewalReminderDays"
)

// Категории настроек
const (
	SettingCategoryScheduling = "scheduling"
	SettingCategoryBooking    = "booking"
	SettingCategoryPricing    = "pricing"
	SettingCategorySystem     = "system"
)
