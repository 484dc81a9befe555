package unblock_slot

import (
	"context"

	"github.com/wipeandshine/scheduling-service/internal/service/slots/models"
)

type SlotService interface {
	Unblock(ctx context.Context, req *models.UnblockSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
