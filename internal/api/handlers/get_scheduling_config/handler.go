package get_scheduling_config

import (
	"net/http"

	"github.com/wipeandshine/scheduling-service/internal/api/handlers"
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

// Handle GET /api/v1/admin/config/scheduling
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetScheduling(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/config/scheduling - Failed to get config: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/config/scheduling - Config retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
