package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	// GetWorkingHours получает недельное расписание профессионала
	GetWorkingHours(ctx context.Context, professionalID int64) (*domain.WorkingHours, error)
	// GetCustomWorkingHoursForDate получает переопределение расписания на дату
	GetCustomWorkingHoursForDate(ctx context.Context, professionalID int64, date string) (*domain.CustomWorkingHours, error)
}

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
