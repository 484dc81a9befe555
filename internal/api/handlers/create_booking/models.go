package create_booking

import (
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	createBooking "github.com/wipeandshine/scheduling-service/internal/usecase/create_booking"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID       int64  `json:"serviceId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "16:00"
	CustomerName    string `json:"customerName"`
	Phone           string `json:"phone"`
	CarNumber       string `json:"carNumber"`
	ParkingLocation string `json:"parkingLocation"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	ServiceID       int64  `json:"serviceId"`
	SlotID          int64  `json:"slotId"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`
	CustomerName    string `json:"customerName"`
	Phone           string `json:"phone"`
	CarNumber       string `json:"carNumber"`
	ParkingLocation string `json:"parkingLocation"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		ServiceID:       r.ServiceID,
		Date:            bookingDate,
		StartTime:       startTime,
		CustomerName:    r.CustomerName,
		Phone:           r.Phone,
		CarNumber:       r.CarNumber,
		ParkingLocation: r.ParkingLocation,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ServiceID:       resp.ServiceID,
		SlotID:          resp.SlotID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		CustomerName:    resp.CustomerName,
		Phone:           resp.Phone,
		CarNumber:       resp.CarNumber,
		ParkingLocation: resp.ParkingLocation,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
