package update_scheduling_config

import (
	"errors"
	"net/http"

	"github.com/wipeandshine/scheduling-service/internal/api/handlers"
	"github.com/wipeandshine/scheduling-service/internal/api/middleware"
	configService "github.com/wipeandshine/scheduling-service/internal/service/config"
	"github.com/wipeandshine/scheduling-service/internal/service/config/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация расписания"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/config/scheduling
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.UserID(r.Context())

	var req models.UpdateSchedulingConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/config/scheduling - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.StaffID = staffID
	req.IPAddress = handlers.ClientIP(r)
	req.UserAgent = handlers.UserAgent(r)

	result, err := h.service.UpdateScheduling(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrInvalidConfig):
			h.logger.Warn("PUT /admin/config/scheduling - Invalid config: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/config/scheduling - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/config/scheduling - Failed to update config: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/config/scheduling - Config updated successfully: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
