package domain

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

// TimeSlot represents a candidate booking slot with its computed availability
// Derived read-model: never persisted, always recomputed on demand
type TimeSlot struct {
	StartAt         time.Time
	Time            types.TimeString // Время начала "HH:MM"
	DurationMinutes int
	Available       bool
	FormattedTime   string // Отображаемое время в 12-часовом формате ("9:00 AM")
}

// CalendarEventType тип события в календаре профессионала
type CalendarEventType string

const (
	EventTypeBlocked     CalendarEventType = "blocked"
	EventTypeAppointment CalendarEventType = "appointment"
)

// CalendarEventStatus нормализованный статус события для отображения в календаре
type CalendarEventStatus string

const (
	EventStatusScheduled CalendarEventStatus = "scheduled"
	EventStatusPending   CalendarEventStatus = "pending"
	EventStatusCancelled CalendarEventStatus = "cancelled"
)

// CalendarEvent represents one entry of the professional's calendar view:
// either a blocked interval or a non-cancelled appointment
// Derived read-model, never persisted
type CalendarEvent struct {
	ID      int64
	Type    CalendarEventType
	Title   string
	StartAt time.Time
	EndAt   time.Time
	Status  CalendarEventStatus
}

// NormalizeEventStatus мапит статус записи в нормализованный статус календаря
func NormalizeEventStatus(status AppointmentStatus) CalendarEventStatus {
	switch status {
	case StatusRequested, StatusPending, StatusPrebooked:
		return EventStatusPending
	case StatusCancelled:
		return EventStatusCancelled
	default:
		return EventStatusScheduled
	}
}
