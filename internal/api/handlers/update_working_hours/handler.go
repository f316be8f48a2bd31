package update_working_hours

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
	msgInvalidWorkingHours   = "некорректные рабочие часы"
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

// UpdateWorkingHoursRequest HTTP request model
type UpdateWorkingHoursRequest struct {
	Monday    models.DayHoursDTO `json:"monday"`
	Tuesday   models.DayHoursDTO `json:"tuesday"`
	Wednesday models.DayHoursDTO `json:"wednesday"`
	Thursday  models.DayHoursDTO `json:"thursday"`
	Friday    models.DayHoursDTO `json:"friday"`
	Saturday  models.DayHoursDTO `json:"saturday"`
	Sunday    models.DayHoursDTO `json:"sunday"`
}

// Handle PUT /api/v1/professionals/{professionalId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/working-hours - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpdateWorkingHoursRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
		Monday:         req.Monday,
		Tuesday:        req.Tuesday,
		Wednesday:      req.Wednesday,
		Thursday:       req.Thursday,
		Friday:         req.Friday,
		Saturday:       req.Saturday,
		Sunday:         req.Sunday,
	}

	result, err := h.service.SaveWorkingHours(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /professionals/{id}/working-hours - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /professionals/{id}/working-hours - Invalid working hours: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		default:
			h.logger.Error("PUT /professionals/{id}/working-hours - Failed to update: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/working-hours - Working hours updated successfully: professional_id=%d", professionalID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
