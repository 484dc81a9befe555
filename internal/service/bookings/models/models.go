package models

import (
	"errors"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	IsAdmin            bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	ServiceID int64 `json:"serviceId"`

	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "16:00"
	EndTime     string `json:"endTime"`     // "16:30"

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	CustomerName    string `json:"customerName"`
	Phone           string `json:"phone"`
	CarNumber       string `json:"carNumber"`
	ParkingLocation string `json:"parkingLocation"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CustomerName:    b.CustomerName,
		Phone:           b.Phone,
		CarNumber:       b.CarNumber,
		ParkingLocation: b.ParkingLocation,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	resp.CancellationReason = b.CancellationReason
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelled
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(items []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(items)),
	}
	for _, b := range items {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус с валидацией
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
