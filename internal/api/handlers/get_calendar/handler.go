package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/BMP-ScheduleService/internal/api/handlers"
	"github.com/m04kA/BMP-ScheduleService/internal/api/middleware"
	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	getCalendar "github.com/m04kA/BMP-ScheduleService/internal/usecase/get_calendar"
)

const (
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgMissingRange          = "параметры from и to обязательны"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange          = "некорректный период календаря"
	msgAccessDenied          = "доступ запрещен"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/calendar
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /professionals/{id}/calendar - Missing range: from=%q, to=%q", fromStr, toStr)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid from date: %q", fromStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/calendar - Invalid to date: %q", toStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), getCalendar.Request{
		RequesterID:    userID,
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrAccessDenied):
			h.logger.Warn("GET /professionals/{id}/calendar - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/calendar - Invalid range: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /professionals/{id}/calendar - Failed to get calendar: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/calendar - Calendar retrieved successfully: professional_id=%d, events_count=%d",
		professionalID, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
