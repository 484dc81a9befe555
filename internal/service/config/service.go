package config

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/internal/service/config/models"
)

// Service сервис управления конфигурацией расписания
type Service struct {
	settingsRepo SettingsRepository
	auditRepo    AuditRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	settingsRepo SettingsRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetScheduling возвращает текущую конфигурацию расписания
func (s *Service) GetScheduling(ctx context.Context) (*models.SchedulingConfigResponse, error) {
	cfg, err := s.settingsRepo.GetScheduling(ctx)
	if err != nil {
		s.logger.Error("GetScheduling: failed to load config: %v", err)
		return nil, fmt.Errorf("%w: GetScheduling - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// UpdateScheduling обновляет конфигурацию расписания
// Частичное обновление: затрагиваются только указанные в запросе поля.
// Новая конфигурация валидируется целиком до записи, изменения и аудит
// фиксируются в одной транзакции
func (s *Service) UpdateScheduling(ctx context.Context, req *models.UpdateSchedulingConfigRequest) (*models.SchedulingConfigResponse, error) {
	s.logger.Info("UpdateScheduling: staff=%d updating scheduling config", req.StaffID)

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if !req.HasChanges() {
		s.logger.Warn("UpdateScheduling: empty update request from staff=%d", req.StaffID)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	current, err := s.settingsRepo.GetScheduling(ctx)
	if err != nil {
		s.logger.Error("UpdateScheduling: failed to load current config: %v", err)
		return nil, fmt.Errorf("%w: UpdateScheduling - repository error: %v", ErrInternal, err)
	}

	next := req.ApplyTo(current)

	if err := validateConfig(next); err != nil {
		s.logger.Warn("UpdateScheduling: validation failed: %v", err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.persistChanges(txCtx, req); err != nil {
			return err
		}
		return s.writeAudit(txCtx, req, current, next)
	})
	if err != nil {
		s.logger.Error("UpdateScheduling: failed to persist config: %v", err)
		return nil, err
	}

	s.logger.Info("UpdateScheduling: staff=%d successfully updated scheduling config", req.StaffID)
	return models.FromDomainConfig(next), nil
}

// persistChanges записывает изменённые ключи в app_settings
func (s *Service) persistChanges(ctx context.Context, req *models.UpdateSchedulingConfigRequest) error {
	upsert := func(key string, value interface{}) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal %s: %v", ErrInternal, key, err)
		}
		if err := s.settingsRepo.Upsert(ctx, key, raw, domain.SettingCategoryScheduling, &req.StaffID); err != nil {
			return fmt.Errorf("%w: failed to upsert %s: %v", ErrInternal, key, err)
		}
		return nil
	}

	if req.BusinessHours != nil {
		if err := upsert(domain.SettingBusinessHours, req.BusinessHours); err != nil {
			return err
		}
	}
	if req.SaturdayCutoffHour != nil {
		if err := upsert(domain.SettingSaturdayCutoffHour, *req.SaturdayCutoffHour); err != nil {
			return err
		}
	}
	if req.MinBookingHoursAhead != nil {
		if err := upsert(domain.SettingMinBookingHoursAhead, *req.MinBookingHoursAhead); err != nil {
			return err
		}
	}
	if req.SlotDurationMinutes != nil {
		if err := upsert(domain.SettingSlotDuration, *req.SlotDurationMinutes); err != nil {
			return err
		}
	}
	if req.SundayBookings != nil {
		if err := upsert(domain.SettingSundayBookings, *req.SundayBookings); err != nil {
			return err
		}
	}

	return nil
}

// writeAudit пишет запись аудита с конфигурацией до и после изменения
func (s *Service) writeAudit(ctx context.Context, req *models.UpdateSchedulingConfigRequest, before, after domain.SchedulingConfig) error {
	payload, err := json.Marshal(map[string]interface{}{
		"before": models.FromDomainConfig(before),
		"after":  models.FromDomainConfig(after),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal audit details: %v", ErrInternal, err)
	}

	entry := &domain.AuditLog{
		UserID:     req.StaffID,
		Action:     domain.AuditActionUpdateConfig,
		EntityType: domain.AuditEntityConfig,
		Details:    payload,
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("%w: failed to write audit log: %v", ErrInternal, err)
	}

	return nil
}

// validateConfig проверяет новую конфигурацию целиком
func validateConfig(cfg domain.SchedulingConfig) error {
	if !cfg.Validate() {
		return fmt.Errorf("%w: business constraints violated", ErrInvalidConfig)
	}

	// Формат и порядок рабочих часов
	start, err := parseTime(cfg.BusinessHoursStart)
	if err != nil {
		return fmt.Errorf("%w: invalid businessHours.start: %v", ErrInvalidConfig, err)
	}
	end, err := parseTime(cfg.BusinessHoursEnd)
	if err != nil {
		return fmt.Errorf("%w: invalid businessHours.end: %v", ErrInvalidConfig, err)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: businessHours.start must be before businessHours.end", ErrInvalidConfig)
	}

	return nil
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(domain.TimeFormat, s)
}
