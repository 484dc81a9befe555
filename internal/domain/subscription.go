package domain

import "time"

// SubscriptionStatus статус подписки на регулярную мойку
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription подписка пользователя на регулярную мойку
// Периодические задачи помечают истёкшие подписки и фиксируют отправку
// напоминаний о продлении; сама доставка уведомлений вне этого сервиса
type Subscription struct {
	ID        int64
	UserID    int64
	ServiceID int64

	Status SubscriptionStatus

	StartDate        time.Time
	EndDate          time.Time
	CurrentPeriodEnd time.Time

	RenewalReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true для действующей подписки
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionActive
}

// IsLapsed возвращает true, если активная подписка уже пережила конец периода
func (s *Subscription) IsLapsed(now time.Time) bool {
	return s.IsActive() && s.CurrentPeriodEnd.Before(now)
}
