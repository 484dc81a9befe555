package block_slot

import (
	"context"

	"github.com/wipeandshine/scheduling-service/internal/service/slots/models"
)

type SlotService interface {
	Block(ctx context.Context, req *models.BlockSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
