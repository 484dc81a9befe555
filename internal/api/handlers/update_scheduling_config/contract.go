package update_scheduling_config

import (
	"context"

	"github.com/wipeandshine/scheduling-service/internal/service/config/models"
)

type ConfigService interface {
	UpdateScheduling(ctx context.Context, req *models.UpdateSchedulingConfigRequest) (*models.SchedulingConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
