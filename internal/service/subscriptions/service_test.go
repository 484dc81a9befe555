package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

type fakeSubscriptionRepo struct {
	due    []*domain.Subscription
	lapsed []*domain.Subscription

	markedSent []int64
	expired    []int64

	markErr   error
	updateErr error
}

func (f *fakeSubscriptionRepo) FindDueForReminder(_ context.Context, _ time.Time) ([]*domain.Subscription, error) {
	return f.due, nil
}

func (f *fakeSubscriptionRepo) FindLapsed(_ context.Context, _ time.Time) ([]*domain.Subscription, error) {
	return f.lapsed, nil
}

func (f *fakeSubscriptionRepo) MarkReminderSent(_ context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedSent = append(f.markedSent, id)
	return nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(_ context.Context, id int64, status domain.SubscriptionStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if status == domain.SubscriptionExpired {
		f.expired = append(f.expired, id)
	}
	return nil
}

type fakeSettingsRepo struct {
	days int
}

func (f *fakeSettingsRepo) GetRenewalReminderDays(_ context.Context) (int, error) {
	return f.days, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeSubscriptionRepo, days int, now time.Time) *Service {
	svc := NewService(repo, &fakeSettingsRepo{days: days}, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc
}

func TestSendRenewalReminders(t *testing.T) {
	now := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	repo := &fakeSubscriptionRepo{
		due: []*domain.Subscription{
			{ID: 1, UserID: 10, Status: domain.SubscriptionActive},
			{ID: 2, UserID: 11, Status: domain.SubscriptionActive},
		},
	}

	svc := newTestService(repo, 5, now)

	processed, err := svc.SendRenewalReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Equal(t, []int64{1, 2}, repo.markedSent)
}

func TestSendRenewalReminders_PartialFailure(t *testing.T) {
	now := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	repo := &fakeSubscriptionRepo{
		due:     []*domain.Subscription{{ID: 1, UserID: 10}},
		markErr: errors.New("db down"),
	}

	svc := newTestService(repo, 5, now)

	// Ошибка отдельной подписки не валит весь запуск
	processed, err := svc.SendRenewalReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestExpireLapsed(t *testing.T) {
	now := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	repo := &fakeSubscriptionRepo{
		lapsed: []*domain.Subscription{
			{ID: 5, Status: domain.SubscriptionActive, CurrentPeriodEnd: now.AddDate(0, 0, -1)},
		},
	}

	svc := newTestService(repo, 5, now)

	processed, err := svc.ExpireLapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, []int64{5}, repo.expired)
}

func TestSubscriptionIsLapsed(t *testing.T) {
	now := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)

	active := &domain.Subscription{Status: domain.SubscriptionActive, CurrentPeriodEnd: now.AddDate(0, 0, -1)}
	assert.True(t, active.IsLapsed(now))

	current := &domain.Subscription{Status: domain.SubscriptionActive, CurrentPeriodEnd: now.AddDate(0, 0, 1)}
	assert.False(t, current.IsLapsed(now))

	cancelled := &domain.Subscription{Status: domain.SubscriptionCancelled, CurrentPeriodEnd: now.AddDate(0, 0, -1)}
	assert.False(t, cancelled.IsLapsed(now))
}
