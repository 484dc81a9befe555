package unblock_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wipeandshine/scheduling-service/internal/api/handlers"
	"github.com/wipeandshine/scheduling-service/internal/api/middleware"
	"github.com/wipeandshine/scheduling-service/internal/service/slots"
	"github.com/wipeandshine/scheduling-service/internal/service/slots/models"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "слот не найден"
	msgNotBlocked    = "слот не заблокирован"
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

// Handle PATCH /api/v1/admin/time-slots/{slotId}/unblock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, _ := middleware.UserID(r.Context())

	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/time-slots/{id}/unblock - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	serviceReq := &models.UnblockSlotRequest{
		StaffID:   staffID,
		SlotID:    slotID,
		IPAddress: handlers.ClientIP(r),
		UserAgent: handlers.UserAgent(r),
	}

	result, err := h.service.Unblock(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /admin/time-slots/{id}/unblock - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrNotBlocked):
			h.logger.Warn("PATCH /admin/time-slots/{id}/unblock - Slot not blocked: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgNotBlocked)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/time-slots/{id}/unblock - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("PATCH /admin/time-slots/{id}/unblock - Failed to unblock slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/time-slots/{id}/unblock - Slot unblocked successfully: slot_id=%d, staff_id=%d",
		slotID, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
