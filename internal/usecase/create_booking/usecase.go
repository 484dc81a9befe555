package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	slotRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Конкурентный доступ к слоту разрешается атомарным upsert в хранилище:
// при гонке за один слот ровно один запрос получает запись, остальные
// завершаются ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Свежий снапшот конфигурации расписания
	cfg, err := uc.settingsRepo.GetScheduling(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load scheduling config: %v", err)
		return nil, fmt.Errorf("%w: failed to load scheduling config: %v", ErrInternal, err)
	}

	// 4. Воскресенье закрыто отдельной ошибкой, а не пустым расписанием
	if domain.IsSunday(req.Date) && !cfg.SundayBookings {
		uc.logger.Warn("CreateBooking: sunday bookings are disabled")
		return nil, ErrSundayClosed
	}

	// 5. Генерируем допустимые слоты на дату
	candidates, err := domain.GenerateSlots(req.Date, cfg, now)
	if err != nil {
		uc.logger.Error("CreateBooking: slot generation failed: %v", err)
		return nil, fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
	}

	// 6. Запрошенное время должно совпадать с одним из слотов
	candidate, ok := findCandidate(candidates, req.StartTime.String())
	if !ok {
		return nil, uc.classifyRejection(req, cfg, now)
	}

	// 7. Создаем бронирование и занимаем слот в одной транзакции
	// Порядок важен: сначала строка бронирования (нужен её ID), затем
	// атомарный захват слота. Проигрыш гонки откатывает обе записи
	var (
		created *domain.Booking
		claimed *domain.TimeSlot
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking := &domain.Booking{
			UserID:          req.UserID,
			ServiceID:       req.ServiceID,
			CustomerName:    req.CustomerName,
			Phone:           req.Phone,
			CarNumber:       req.CarNumber,
			ParkingLocation: req.ParkingLocation,
			BookingDate:     req.Date,
			StartTime:       candidate.StartTime,
			EndTime:         candidate.EndTime,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		claimed, err = uc.slotRepo.Claim(txCtx, req.Date, candidate.StartTime, candidate.EndTime, req.UserID, created.ID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s %s already taken", req.Date.Format(domain.DateFormat), candidate.StartTime)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to claim slot: %v", err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, slot id=%d", created.ID, claimed.ID)

	return &Response{
		ID:              created.ID,
		UserID:          created.UserID,
		ServiceID:       created.ServiceID,
		SlotID:          claimed.ID,
		BookingDate:     created.BookingDate,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		Status:          string(created.Status),
		PaymentStatus:   string(created.PaymentStatus),
		CustomerName:    created.CustomerName,
		Phone:           created.Phone,
		CarNumber:       created.CarNumber,
		ParkingLocation: created.ParkingLocation,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

// classifyRejection объясняет, почему запрошенное время не попало в расписание
func (uc *UseCase) classifyRejection(req *Request, cfg domain.SchedulingConfig, now time.Time) error {
	// Сегодняшний день: слот мог выпасть из-за минимального запаса времени
	if domain.IsSameDay(req.Date, now) {
		farEnough, err := domain.IsAtLeastMinHoursAway(req.Date, req.StartTime, now, cfg.MinBookingHoursAhead)
		if err == nil && !farEnough {
			uc.logger.Warn("CreateBooking: slot %s is within the %dh lead window", req.StartTime, cfg.MinBookingHoursAhead)
			return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, cfg.MinBookingHoursAhead)
		}
	}

	uc.logger.Warn("CreateBooking: time %s does not match any slot on %s", req.StartTime, req.Date.Format(domain.DateFormat))
	return ErrInvalidTimeSlot
}
