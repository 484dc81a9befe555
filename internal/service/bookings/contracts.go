package bookings

import (
	"context"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// SlotRepository интерфейс хранилища записей слотов
type SlotRepository interface {
	// ReleaseByBooking освобождает слот, занятый бронированием
	ReleaseByBooking(ctx context.Context, bookingID int64) error
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
