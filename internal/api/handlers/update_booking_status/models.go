package update_booking_status

import (
	"github.com/wipeandshine/scheduling-service/internal/service/bookings/models"
)

// UpdateBookingStatusRequest HTTP request model
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateBookingStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
	}
}
