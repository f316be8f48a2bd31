package update_custom_hours

import (
	"context"

	"github.com/m04kA/BMP-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReplaceCustomHours(ctx context.Context, req *models.UpdateCustomHoursRequest) ([]models.CustomHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
