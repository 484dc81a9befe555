package get_scheduling_config

import (
	"context"

	"github.com/wipeandshine/scheduling-service/internal/service/config/models"
)

type ConfigService interface {
	GetScheduling(ctx context.Context) (*models.SchedulingConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
