package block_slot

import (
	"errors"
	"net/http"

	"github.com/wipeandshine/scheduling-service/internal/api/handlers"
	"github.com/wipeandshine/scheduling-service/internal/api/middleware"
	"github.com/wipeandshine/scheduling-service/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время слота"
	msgSlotBooked         = "слот уже забронирован и не может быть заблокирован"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/time-slots/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.UserID(r.Context())

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/time-slots/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(staffID, handlers.ClientIP(r), handlers.UserAgent(r))
	if err != nil {
		h.logger.Warn("POST /admin/time-slots/block - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.service.Block(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotTaken):
			h.logger.Warn("POST /admin/time-slots/block - Slot already booked: date=%s, time=%s",
				req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotBooked)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /admin/time-slots/block - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/time-slots/block - Failed to block slot: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/time-slots/block - Slot blocked successfully: slot_id=%d, staff_id=%d",
		result.ID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
