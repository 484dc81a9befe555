package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/wipeandshine/scheduling-service/internal/api/handlers"
	"github.com/wipeandshine/scheduling-service/internal/api/middleware"
	getAvailableSlots "github.com/wipeandshine/scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast    = "дата не может быть в прошлом"
	msgInvalidConfig = "конфигурация расписания повреждена, обратитесь к администратору"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/available
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots/available - Missing date: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(userID, dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/available - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots/available - Date in past: user_id=%d, date=%s", userID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots/available - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidSchedulingConfig):
			h.logger.Error("GET /slots/available - Malformed scheduling config: error=%v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInvalidConfig)

		default:
			h.logger.Error("GET /slots/available - Failed to get slots: user_id=%d, date=%s, error=%v",
				userID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slots/available - Slots retrieved successfully: user_id=%d, date=%s, slots_count=%d",
		userID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
