package block_slot

import (
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/internal/service/slots/models"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "16:00"
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockSlotRequest) ToServiceRequest(staffID int64, ip, userAgent *string) (*models.BlockSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.BlockSlotRequest{
		StaffID:   staffID,
		Date:      date,
		StartTime: startTime,
		Reason:    r.Reason,
		IPAddress: ip,
		UserAgent: userAgent,
	}, nil
}
