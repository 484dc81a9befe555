package get_available_slots

import (
	"context"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// SlotRepository интерфейс хранилища записей слотов
type SlotRepository interface {
	// FindByDate получает все записи слотов на календарный день
	FindByDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error)
}

// SettingsRepository интерфейс провайдера конфигурации расписания
type SettingsRepository interface {
	// GetScheduling собирает актуальный снапшот конфигурации (без кэширования)
	GetScheduling(ctx context.Context) (domain.SchedulingConfig, error)
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
