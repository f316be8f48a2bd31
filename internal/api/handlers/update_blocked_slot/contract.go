package update_blocked_slot

import (
	"context"

	"github.com/m04kA/BMP-ScheduleService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateBlockedSlot(ctx context.Context, id int64, req *models.UpdateBlockedSlotRequest) (*models.BlockedSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
