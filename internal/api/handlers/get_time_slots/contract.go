package get_time_slots

import (
	"context"
	"time"

	"github.com/wipeandshine/scheduling-service/internal/service/slots/models"
)

type SlotService interface {
	ListByDate(ctx context.Context, date time.Time) (*models.TimeSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
