package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	GetByProfessionalInRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.BlockedTimeSlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByProfessionalWithFilter(ctx context.Context, filter domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
