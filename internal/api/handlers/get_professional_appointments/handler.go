package get_professional_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/BMP-ScheduleService/internal/api/handlers"
	"github.com/m04kA/BMP-ScheduleService/internal/api/middleware"
	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	appointmentsService "github.com/m04kA/BMP-ScheduleService/internal/service/appointments"
	"github.com/m04kA/BMP-ScheduleService/internal/service/appointments/models"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter         = "некорректные параметры фильтрации"
	msgAccessDenied          = "доступ запрещен"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/appointments
// Query params: date, startDate, endDate (YYYY-MM-DD), status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/appointments - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	req := &models.GetProfessionalAppointmentsRequest{
		UserID:           userID,
		ProfessionalID:   professionalID,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}

	query := r.URL.Query()

	// Парсим опциональные параметры дат
	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /professionals/{id}/appointments - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if startStr := query.Get("startDate"); startStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startStr)
		if err != nil {
			h.logger.Warn("GET /professionals/{id}/appointments - Invalid startDate: %q", startStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endStr := query.Get("endDate"); endStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endStr)
		if err != nil {
			h.logger.Warn("GET /professionals/{id}/appointments - Invalid endDate: %q", endStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetProfessionalAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("GET /professionals/{id}/appointments - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/appointments - Invalid filter: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /professionals/{id}/appointments - Failed to get appointments: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/appointments - Appointments retrieved successfully: professional_id=%d, count=%d",
		professionalID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
