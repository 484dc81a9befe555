package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/dbmetrics"
	"github.com/wipeandshine/scheduling-service/pkg/psqlbuilder"
)

// businessHours формат значения scheduling.businessHours в app_settings
type businessHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Repository репозиторий настроек приложения (key/value с JSONB значениями)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает значение настройки по ключу
func (r *Repository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("value").
		From("app_settings").
		Where(squirrel.Eq{"key": key}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrSettingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	return json.RawMessage(value), nil
}

// GetByCategory получает все настройки категории как map ключ -> значение
func (r *Repository) GetByCategory(ctx context.Context, category string) (map[string]json.RawMessage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From("app_settings").
		Where(squirrel.Eq{"category": category}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCategory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCategory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: GetByCategory - scan row: %v", ErrScanRow, err)
		}
		values[key] = json.RawMessage(value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCategory - rows error: %v", ErrScanRow, err)
	}

	return values, nil
}

// Upsert создает или обновляет настройку по ключу
func (r *Repository) Upsert(ctx context.Context, key string, value json.RawMessage, category string, updatedBy *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("app_settings").
		Columns("key", "value", "category", "updated_by").
		Values(key, []byte(value), category, updatedBy).
		Suffix(`ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetScheduling собирает снапшот конфигурации расписания
// Отсутствующие ключи заполняются дефолтами; значение, которое не разбирается
// в ожидаемый тип - это ErrInvalidValue, дефолт для него не угадывается
func (r *Repository) GetScheduling(ctx context.Context) (domain.SchedulingConfig, error) {
	cfg := domain.DefaultSchedulingConfig()

	values, err := r.GetByCategory(ctx, domain.SettingCategoryScheduling)
	if err != nil {
		return cfg, fmt.Errorf("GetScheduling: %w", err)
	}

	if raw, ok := values[domain.SettingBusinessHours]; ok {
		var hours businessHours
		if err := json.Unmarshal(raw, &hours); err != nil || hours.Start == "" || hours.End == "" {
			return cfg, fmt.Errorf("%w: %s: %s", ErrInvalidValue, domain.SettingBusinessHours, raw)
		}
		cfg.BusinessHoursStart = hours.Start
		cfg.BusinessHoursEnd = hours.End
	}

	if raw, ok := values[domain.SettingSaturdayCutoffHour]; ok {
		if err := json.Unmarshal(raw, &cfg.SaturdayCutoffHour); err != nil {
			return cfg, fmt.Errorf("%w: %s: %s", ErrInvalidValue, domain.SettingSaturdayCutoffHour, raw)
		}
	}

	if raw, ok := values[domain.SettingMinBookingHoursAhead]; ok {
		if err := json.Unmarshal(raw, &cfg.MinBookingHoursAhead); err != nil {
			return cfg, fmt.Errorf("%w: %s: %s", ErrInvalidValue, domain.SettingMinBookingHoursAhead, raw)
		}
	}

	if raw, ok := values[domain.SettingSlotDuration]; ok {
		if err := json.Unmarshal(raw, &cfg.SlotDurationMinutes); err != nil {
			return cfg, fmt.Errorf("%w: %s: %s", ErrInvalidValue, domain.SettingSlotDuration, raw)
		}
	}

	if raw, ok := values[domain.SettingSundayBookings]; ok {
		if err := json.Unmarshal(raw, &cfg.SundayBookings); err != nil {
			return cfg, fmt.Errorf("%w: %s: %s", ErrInvalidValue, domain.SettingSundayBookings, raw)
		}
	}

	return cfg, nil
}

// GetRenewalReminderDays возвращает настройку дней напоминания о продлении подписки
func (r *Repository) GetRenewalReminderDays(ctx context.Context) (int, error) {
	raw, err := r.Get(ctx, domain.SettingRenewalReminderDays)
	if err == ErrSettingNotFound {
		return domain.DefaultRenewalReminderDays, nil
	}
	if err != nil {
		return 0, fmt.Errorf("GetRenewalReminderDays: %w", err)
	}

	var days int
	if err := json.Unmarshal(raw, &days); err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrInvalidValue, domain.SettingRenewalReminderDays, raw)
	}

	return days, nil
}
