package get_available_slots

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// Request запрос на получение доступных слотов
type Request struct {
	ProfessionalID  int64
	Date            time.Time
	DurationMinutes int
}

// Response ответ со списком слотов на дату
type Response struct {
	ProfessionalID int64
	Date           time.Time
	Slots          []domain.TimeSlot
}
