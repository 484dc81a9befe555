package config

import (
	"context"
	"encoding/json"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// SettingsRepository интерфейс хранилища настроек
type SettingsRepository interface {
	GetScheduling(ctx context.Context) (domain.SchedulingConfig, error)
	Upsert(ctx context.Context, key string, value json.RawMessage, category string, updatedBy *int64) error
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
