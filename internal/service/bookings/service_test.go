package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	bookingRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/booking"
	"github.com/wipeandshine/scheduling-service/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	items map[int64]*domain.Booking
}

func newFakeBookingRepo(items ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{items: make(map[int64]*domain.Booking)}
	for _, b := range items {
		repo.items[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeSlotRepo struct {
	released []int64
	err      error
}

func (f *fakeSlotRepo) ReleaseByBooking(_ context.Context, bookingID int64) error {
	if f.err != nil {
		return f.err
	}
	f.released = append(f.released, bookingID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id, userID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		UserID:      userID,
		ServiceID:   1,
		BookingDate: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
		Status:      status,
	}
}

func TestGetByID_OwnerAndAdminAccess(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, 42, domain.StatusConfirmed))
	svc := NewService(repo, &fakeSlotRepo{}, fakeTxManager{}, nopLogger{})

	// Владелец видит своё бронирование
	resp, err := svc.GetByID(context.Background(), 1, 42, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Чужой пользователь - нет
	_, err = svc.GetByID(context.Background(), 1, 43, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Администратор видит любое
	resp, err = svc.GetByID(context.Background(), 1, 43, true)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.UserID)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeSlotRepo{}, fakeTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99, 42, false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(1, 42, domain.StatusConfirmed),
		testBooking(2, 42, domain.StatusCancelled),
		testBooking(3, 43, domain.StatusConfirmed),
	)
	svc := NewService(repo, &fakeSlotRepo{}, fakeTxManager{}, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	status := "confirmed"
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42, Status: &status})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	bad := "weird"
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ReleasesSlot(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, 42, domain.StatusConfirmed))
	slots := &fakeSlotRepo{}
	svc := NewService(repo, slots, fakeTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             42,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)

	b := repo.items[1]
	assert.Equal(t, domain.StatusCancelled, b.Status)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, "передумал", *b.CancellationReason)
	assert.NotNil(t, b.CancelledAt)

	// Слот освобождён в той же операции
	assert.Equal(t, []int64{1}, slots.released)
}

func TestCancel_AccessAndStateChecks(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(1, 42, domain.StatusConfirmed),
		testBooking(2, 42, domain.StatusCompleted),
		testBooking(3, 42, domain.StatusCancelled),
	)
	slots := &fakeSlotRepo{}
	svc := NewService(repo, slots, fakeTxManager{}, nopLogger{})

	// Чужое бронирование без прав администратора
	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 43})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Администратор может отменить чужое
	err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 43, IsAdmin: true})
	assert.NoError(t, err)

	// Завершённое и уже отменённое не отменяются
	err = svc.Cancel(context.Background(), 2, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)

	err = svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, 42, domain.StatusPending))
	svc := NewService(repo, &fakeSlotRepo{}, fakeTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 1, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.items[1].Status)

	// Отмена через смену статуса запрещена
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 1, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Неизвестный статус
	err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 1, Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
