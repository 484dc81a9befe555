package slots

import (
	"context"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// SlotRepository интерфейс хранилища записей слотов
type SlotRepository interface {
	FindByDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error)
	Block(ctx context.Context, date time.Time, startTime, endTime types.TimeString, staffID int64, reason *string) (*domain.TimeSlot, error)
	Unblock(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// SettingsRepository интерфейс провайдера конфигурации расписания
type SettingsRepository interface {
	GetScheduling(ctx context.Context) (domain.SchedulingConfig, error)
}

// AuditRepository интерфейс журнала аудита
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
