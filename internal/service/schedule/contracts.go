package schedule

import (
	"context"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, professionalID int64) (*domain.WorkingHours, error)
	SaveWorkingHours(ctx context.Context, wh *domain.WorkingHours) error
	GetCustomWorkingHours(ctx context.Context, professionalID int64) ([]*domain.CustomWorkingHours, error)
	ReplaceCustomWorkingHours(ctx context.Context, professionalID int64, entries []*domain.CustomWorkingHours) error
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	Create(ctx context.Context, slot *domain.BlockedTimeSlot) (*domain.BlockedTimeSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedTimeSlot, error)
	GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.BlockedTimeSlot, error)
	Update(ctx context.Context, slot *domain.BlockedTimeSlot) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
