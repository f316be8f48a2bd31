package get_client_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/BMP-ScheduleService/internal/api/handlers"
	"github.com/m04kA/BMP-ScheduleService/internal/api/middleware"
	appointmentsService "github.com/m04kA/BMP-ScheduleService/internal/service/appointments"
	"github.com/m04kA/BMP-ScheduleService/internal/service/appointments/models"
)

const (
	msgInvalidStatus = "некорректный статус записи"
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

// Handle GET /api/v1/appointments
// Query params: status (optional)
// Возвращает записи текущего пользователя как клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.UserID(r.Context())

	req := &models.GetClientAppointmentsRequest{
		ClientID: clientID,
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetClientAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid status filter: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /appointments - Failed to get appointments: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
