package get_calendar

import (
	"sort"
	"strings"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// appointmentTitle собирает отображаемый заголовок события из записи.
// Префикс "[PENDING] " добавляется только для записей, ожидающих подтверждения,
// и не дублируется при повторном применении.
func appointmentTitle(apt *domain.Appointment) string {
	title := apt.ServiceName
	if apt.ClientName != "" {
		title = apt.ServiceName + " - " + apt.ClientName
	}

	title = strings.TrimPrefix(title, domain.PendingTitlePrefix)

	if apt.Status == domain.StatusRequested || apt.Status == domain.StatusPending {
		return domain.PendingTitlePrefix + title
	}

	return title
}

// buildEvents объединяет блокировки и записи в единый отсортированный список событий
func buildEvents(blocked []*domain.BlockedTimeSlot, appointments []*domain.Appointment) []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0, len(blocked)+len(appointments))

	for _, b := range blocked {
		events = append(events, domain.CalendarEvent{
			ID:      b.ID,
			Type:    domain.EventTypeBlocked,
			Title:   b.Title,
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
			Status:  domain.EventStatusScheduled,
		})
	}

	for _, apt := range appointments {
		if apt.Status == domain.StatusCancelled {
			continue
		}

		events = append(events, domain.CalendarEvent{
			ID:      apt.ID,
			Type:    domain.EventTypeAppointment,
			Title:   appointmentTitle(apt),
			StartAt: apt.StartAt,
			EndAt:   apt.EndAt,
			Status:  domain.NormalizeEventStatus(apt.Status),
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].StartAt.Equal(events[j].StartAt) {
			return events[i].EndAt.Before(events[j].EndAt)
		}
		return events[i].StartAt.Before(events[j].StartAt)
	})

	return events
}
