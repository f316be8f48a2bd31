package delete_blocked_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BMP-ScheduleService/internal/api/handlers"
	"github.com/m04kA/BMP-ScheduleService/internal/api/middleware"
	scheduleService "github.com/m04kA/BMP-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidSlotID = "некорректный ID блокировки"
	msgSlotNotFound  = "блокировка не найдена"
	msgAccessDenied  = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/blocked-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocked-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteBlockedSlot(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBlockedSlotNotFound):
			h.logger.Warn("DELETE /blocked-slots/{id} - Slot not found: slot_id=%d", id)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("DELETE /blocked-slots/{id} - Access denied: slot_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /blocked-slots/{id} - Failed to delete: slot_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-slots/{id} - Blocked slot deleted successfully: slot_id=%d, user_id=%d", id, userID)
	w.WriteHeader(http.StatusNoContent)
}
