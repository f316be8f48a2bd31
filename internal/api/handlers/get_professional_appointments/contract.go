package get_professional_appointments

import (
	"context"

	"github.com/m04kA/BMP-ScheduleService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetProfessionalAppointments(ctx context.Context, req *models.GetProfessionalAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
