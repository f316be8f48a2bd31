package get_schedule

import (
	"context"

	"github.com/m04kA/BMP-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, professionalID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
