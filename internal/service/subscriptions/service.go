package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("service: internal error")

// Service сервис периодического обслуживания подписок
// Вызывается планировщиком фоновых задач, не из HTTP API
type Service struct {
	subscriptionRepo SubscriptionRepository
	settingsRepo     SettingsRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса подписок
func NewService(
	subscriptionRepo SubscriptionRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		settingsRepo:     settingsRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// SendRenewalReminders помечает подписки, владельцам которых пора напомнить
// о продлении. Горизонт напоминания настраивается через app_settings.
// Возвращает количество обработанных подписок
func (s *Service) SendRenewalReminders(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	days, err := s.settingsRepo.GetRenewalReminderDays(ctx)
	if err != nil {
		s.logger.Error("SendRenewalReminders: failed to load reminder days: %v", err)
		return 0, fmt.Errorf("%w: SendRenewalReminders - failed to load settings: %v", ErrInternal, err)
	}

	periodEndDay := now.AddDate(0, 0, days)
	s.logger.Info("SendRenewalReminders: looking for subscriptions ending on %s",
		periodEndDay.Format(domain.DateFormat))

	due, err := s.subscriptionRepo.FindDueForReminder(ctx, periodEndDay)
	if err != nil {
		s.logger.Error("SendRenewalReminders: repository error: %v", err)
		return 0, fmt.Errorf("%w: SendRenewalReminders - repository error: %v", ErrInternal, err)
	}

	processed := 0
	for _, sub := range due {
		if err := s.subscriptionRepo.MarkReminderSent(ctx, sub.ID); err != nil {
			// Остальные подписки обрабатываем, пропущенная попадёт в следующий запуск
			s.logger.Error("SendRenewalReminders: failed to mark subscription id=%d: %v", sub.ID, err)
			continue
		}
		s.logger.Info("SendRenewalReminders: reminder recorded for subscription id=%d, user=%d", sub.ID, sub.UserID)
		processed++
	}

	s.logger.Info("SendRenewalReminders: processed %d of %d subscriptions", processed, len(due))
	return processed, nil
}

// ExpireLapsed переводит активные подписки с истёкшим периодом в статус expired
// Возвращает количество обработанных подписок
func (s *Service) ExpireLapsed(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	lapsed, err := s.subscriptionRepo.FindLapsed(ctx, now)
	if err != nil {
		s.logger.Error("ExpireLapsed: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireLapsed - repository error: %v", ErrInternal, err)
	}

	processed := 0
	for _, sub := range lapsed {
		if err := s.subscriptionRepo.UpdateStatus(ctx, sub.ID, domain.SubscriptionExpired); err != nil {
			s.logger.Error("ExpireLapsed: failed to expire subscription id=%d: %v", sub.ID, err)
			continue
		}
		s.logger.Info("ExpireLapsed: subscription id=%d expired, period ended %s",
			sub.ID, sub.CurrentPeriodEnd.Format(domain.DateFormat))
		processed++
	}

	s.logger.Info("ExpireLapsed: processed %d of %d subscriptions", processed, len(lapsed))
	return processed, nil
}
