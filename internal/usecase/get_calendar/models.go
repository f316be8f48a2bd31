package get_calendar

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// Request запрос календаря профессионала за период
type Request struct {
	RequesterID    int64
	ProfessionalID int64
	From           time.Time
	To             time.Time
}

// Response ответ со списком событий календаря
type Response struct {
	ProfessionalID int64
	From           time.Time
	To             time.Time
	Events         []domain.CalendarEvent
}
