package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	settingsRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/settings"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// UseCase use case получения доступных слотов на дату
// Композиция генератора и хранилища слотов: генерируем кандидатов,
// выбрасываем занятые и заблокированные. Только чтение, без записи
type UseCase struct {
	slotRepo     SlotRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, date=%s", req.UserID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Свежий снапшот конфигурации на каждый запрос
	cfg, err := uc.settingsRepo.GetScheduling(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrInvalidValue) {
			uc.logger.Error("GetAvailableSlots: malformed scheduling config: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedulingConfig, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to load scheduling config: %v", err)
		return nil, fmt.Errorf("%w: failed to load scheduling config: %v", ErrInternal, err)
	}

	// 3. Генерируем кандидатов
	// Пустой список - нормальный результат (воскресенье, субботняя отсечка)
	candidates, err := domain.GenerateSlots(req.Date, cfg, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: slot generation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedulingConfig, err)
	}

	// 4. Получаем занятые записи на этот день
	records, err := uc.slotRepo.FindByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load slot records: %v", err)
		return nil, fmt.Errorf("%w: failed to load slot records: %v", ErrInternal, err)
	}

	available := filterTaken(candidates, records)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available on %s",
		len(available), len(candidates), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: available,
	}, nil
}

// filterTaken выбрасывает кандидатов, чьё время начала совпадает с занятой
// или заблокированной записью. Порядок генератора сохраняется
func filterTaken(candidates []domain.CandidateSlot, records []*domain.TimeSlot) []domain.CandidateSlot {
	taken := make(map[types.TimeString]struct{}, len(records))
	for _, record := range records {
		if record.IsBooked() || record.IsBlocked {
			taken[record.StartTime] = struct{}{}
		}
	}

	available := make([]domain.CandidateSlot, 0, len(candidates))
	for _, candidate := range candidates {
		if _, ok := taken[candidate.StartTime]; ok {
			continue
		}
		available = append(available, candidate)
	}

	return available
}
