package update_blocked_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/BMP-ScheduleService/internal/api/handlers"
	"github.com/m04kA/BMP-ScheduleService/internal/api/middleware"
	scheduleService "github.com/m04kA/BMP-ScheduleService/internal/service/schedule"
	"github.com/m04kA/BMP-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidSlotID      = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "некорректный интервал блокировки"
	msgSlotNotFound       = "блокировка не найдена"
	msgAccessDenied       = "доступ запрещен"
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

// UpdateBlockedSlotRequest HTTP request model
type UpdateBlockedSlotRequest struct {
	Title   string    `json:"title,omitempty"`
	StartAt time.Time `json:"startAt"` // ISO 8601
	EndAt   time.Time `json:"endAt"`   // ISO 8601
}

// Handle PUT /api/v1/blocked-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /blocked-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateBlockedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /blocked-slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateBlockedSlotRequest{
		UserID:  userID,
		Title:   req.Title,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
	}

	result, err := h.service.UpdateBlockedSlot(r.Context(), id, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrBlockedSlotNotFound):
			h.logger.Warn("PUT /blocked-slots/{id} - Slot not found: slot_id=%d", id)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /blocked-slots/{id} - Access denied: slot_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /blocked-slots/{id} - Invalid interval: slot_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("PUT /blocked-slots/{id} - Failed to update: slot_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /blocked-slots/{id} - Blocked slot updated successfully: slot_id=%d, user_id=%d", id, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
