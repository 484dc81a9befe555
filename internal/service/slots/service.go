package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	slotRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/slot"
	"github.com/wipeandshine/scheduling-service/internal/service/slots/models"
)

// Service сервис административного управления слотами
type Service struct {
	slotRepo     SlotRepository
	settingsRepo SettingsRepository
	auditRepo    AuditRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	settingsRepo SettingsRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// ListByDate возвращает все записи слотов на дату
// Запись создаётся при бронировании или блокировке; слоты без записи свободны
func (s *Service) ListByDate(ctx context.Context, date time.Time) (*models.TimeSlotListResponse, error) {
	s.logger.Info("ListByDate: fetching slot records for date=%s", date.Format(domain.DateFormat))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	items, err := s.slotRepo.FindByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: fetched %d slot records for date=%s", len(items), date.Format(domain.DateFormat))
	return models.FromDomainSlotList(date, items), nil
}

// Block блокирует слот для бронирования
// Забронированный слот заблокировать нельзя, повторная блокировка обновляет причину
// Блокировка и запись аудита выполняются в одной транзакции
func (s *Service) Block(ctx context.Context, req *models.BlockSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("Block: staff=%d blocking slot date=%s, time=%s",
		req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateBlockRequest(req); err != nil {
		s.logger.Warn("Block: validation failed: %v", err)
		return nil, err
	}

	// Длительность слота берём из актуальной конфигурации
	cfg, err := s.settingsRepo.GetScheduling(ctx)
	if err != nil {
		s.logger.Error("Block: failed to load scheduling config: %v", err)
		return nil, fmt.Errorf("%w: Block - failed to load scheduling config: %v", ErrInternal, err)
	}

	endTime, err := req.StartTime.AddMinutes(cfg.SlotDurationMinutes)
	if err != nil {
		s.logger.Warn("Block: invalid start time %s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	var blocked *domain.TimeSlot

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		blocked, err = s.slotRepo.Block(txCtx, req.Date, req.StartTime, endTime, req.StaffID, req.Reason)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
		}

		return s.writeAudit(txCtx, req.StaffID, domain.AuditActionBlockTimeSlot, blocked.ID, map[string]interface{}{
			"date":      req.Date.Format(domain.DateFormat),
			"startTime": req.StartTime.String(),
			"reason":    req.Reason,
		}, req.IPAddress, req.UserAgent)
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.logger.Warn("Block: slot date=%s, time=%s is already booked", req.Date.Format(domain.DateFormat), req.StartTime)
		} else {
			s.logger.Error("Block: failed to block slot: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Block: successfully blocked slot id=%d", blocked.ID)
	return models.FromDomainSlot(blocked), nil
}

// Unblock снимает блокировку со слота
func (s *Service) Unblock(ctx context.Context, req *models.UnblockSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("Unblock: staff=%d unblocking slot id=%d", req.StaffID, req.SlotID)

	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	var unblocked *domain.TimeSlot

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		unblocked, err = s.slotRepo.Unblock(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			if errors.Is(err, slotRepo.ErrSlotNotBlocked) {
				return ErrNotBlocked
			}
			return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
		}

		return s.writeAudit(txCtx, req.StaffID, domain.AuditActionUnblockTimeSlot, unblocked.ID, map[string]interface{}{
			"date":      unblocked.Date.Format(domain.DateFormat),
			"startTime": unblocked.StartTime.String(),
		}, req.IPAddress, req.UserAgent)
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrNotBlocked) {
			s.logger.Warn("Unblock: slot id=%d: %v", req.SlotID, err)
		} else {
			s.logger.Error("Unblock: failed to unblock slot id=%d: %v", req.SlotID, err)
		}
		return nil, err
	}

	s.logger.Info("Unblock: successfully unblocked slot id=%d", unblocked.ID)
	return models.FromDomainSlot(unblocked), nil
}

// writeAudit пишет запись аудита административного действия
func (s *Service) writeAudit(
	ctx context.Context,
	staffID int64,
	action string,
	slotID int64,
	details map[string]interface{},
	ip, userAgent *string,
) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal audit details: %v", ErrInternal, err)
	}

	entry := &domain.AuditLog{
		UserID:     staffID,
		Action:     action,
		EntityType: domain.AuditEntityTimeSlot,
		EntityID:   &slotID,
		Details:    payload,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("%w: failed to write audit log: %v", ErrInternal, err)
	}

	return nil
}

// validateBlockRequest валидирует запрос на блокировку
func validateBlockRequest(req *models.BlockSlotRequest) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: block reason is too long", ErrInvalidInput)
	}

	return nil
}
