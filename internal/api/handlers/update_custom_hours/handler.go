package update_custom_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/BMP-ScheduleService/internal/api/handlers"
	"github.com/m04kA/BMP-ScheduleService/internal/api/middleware"
	scheduleService "github.com/m04kA/BMP-ScheduleService/internal/service/schedule"
	"github.com/m04kA/BMP-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidEntries        = "некорректные переопределения расписания"
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

// UpdateCustomHoursRequest HTTP request model
type UpdateCustomHoursRequest struct {
	Entries []models.CustomHoursEntry `json:"entries"`
}

// Handle PUT /api/v1/professionals/{professionalId}/custom-hours
// Полностью заменяет набор переопределений расписания
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/custom-hours - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req UpdateCustomHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/custom-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateCustomHoursRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
		Entries:        req.Entries,
	}

	result, err := h.service.ReplaceCustomHours(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /professionals/{id}/custom-hours - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /professionals/{id}/custom-hours - Invalid entries: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidEntries)

		default:
			h.logger.Error("PUT /professionals/{id}/custom-hours - Failed to update: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/custom-hours - Custom hours replaced successfully: professional_id=%d, entries=%d",
		professionalID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
