package domain

import (
	"time"

	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus статус оплаты бронирования
// Оплата - ручная загрузка слипа, проверяемая сотрудником; интеграции с платёжным
// шлюзом нет, поле используется только для учёта
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSubmitted PaymentStatus = "submitted"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRejected  PaymentStatus = "rejected"
)

// Booking бронирование мойки на конкретный слот
type Booking struct {
	ID        int64
	UserID    int64
	ServiceID int64

	// Контактные данные клиента (денормализованы в запись)
	CustomerName    string
	Phone           string
	CarNumber       string
	ParkingLocation string

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	Status        BookingStatus
	PaymentStatus PaymentStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled возвращает true, если бронирование можно отменить
// Завершённые и уже отменённые бронирования не отменяются
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
