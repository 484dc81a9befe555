package get_available_slots

import (
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	getAvailableSlots "github.com/wipeandshine/scheduling-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"` // "16:00"
	EndTime   string `json:"endTime"`   // "16:30"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID: userID,
		Date:   date,
	}, nil
}
