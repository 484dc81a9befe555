package create_booking

import (
	"context"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс хранилища записей слотов
type SlotRepository interface {
	// Claim атомарно занимает слот за пользователем
	// Возвращает ErrSlotTaken, если слот уже занят или заблокирован
	Claim(ctx context.Context, date time.Time, startTime, endTime types.TimeString, userID, bookingID int64) (*domain.TimeSlot, error)
}

// SettingsRepository интерфейс провайдера конфигурации расписания
type SettingsRepository interface {
	GetScheduling(ctx context.Context) (domain.SchedulingConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
