package get_calendar

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	getCalendar "github.com/m04kA/BMP-ScheduleService/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Events         []CalendarEvent `json:"events"`
}

// CalendarEvent модель события календаря
type CalendarEvent struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`  // "blocked" или "appointment"
	Title   string `json:"title"`
	StartAt string `json:"startAt"` // ISO 8601
	EndAt   string `json:"endAt"`   // ISO 8601
	Status  string `json:"status"`  // "scheduled", "pending", "cancelled"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	events := make([]CalendarEvent, 0, len(resp.Events))
	for _, e := range resp.Events {
		events = append(events, CalendarEvent{
			ID:      e.ID,
			Type:    string(e.Type),
			Title:   e.Title,
			StartAt: e.StartAt.Format(time.RFC3339),
			EndAt:   e.EndAt.Format(time.RFC3339),
			Status:  string(e.Status),
		})
	}

	return &CalendarResponse{
		ProfessionalID: resp.ProfessionalID,
		From:           resp.From.Format(domain.DateFormat),
		To:             resp.To.Format(domain.DateFormat),
		Events:         events,
	}
}
