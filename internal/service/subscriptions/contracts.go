package subscriptions

import (
	"context"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// SubscriptionRepository интерфейс хранилища подписок
type SubscriptionRepository interface {
	FindDueForReminder(ctx context.Context, periodEndDay time.Time) ([]*domain.Subscription, error)
	FindLapsed(ctx context.Context, asOf time.Time) ([]*domain.Subscription, error)
	MarkReminderSent(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error
}

// SettingsRepository интерфейс провайдера настроек
type SettingsRepository interface {
	GetRenewalReminderDays(ctx context.Context) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
