package create_blocked_slot

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
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInterval       = "некорректный интервал блокировки"
	msgAccessDenied          = "доступ запрещен"
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

// CreateBlockedSlotRequest HTTP request model
type CreateBlockedSlotRequest struct {
	Title   string    `json:"title,omitempty"`
	StartAt time.Time `json:"startAt"` // ISO 8601
	EndAt   time.Time `json:"endAt"`   // ISO 8601
}

// Handle POST /api/v1/professionals/{professionalId}/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/blocked-slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req CreateBlockedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CreateBlockedSlotRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
		Title:          req.Title,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
	}

	result, err := h.service.CreateBlockedSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("POST /professionals/{id}/blocked-slots - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/blocked-slots - Invalid interval: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("POST /professionals/{id}/blocked-slots - Failed to create: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /professionals/{id}/blocked-slots - Blocked slot created successfully: slot_id=%d, professional_id=%d",
		result.ID, professionalID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
