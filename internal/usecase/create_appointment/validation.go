package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ClientID == req.ProfessionalID {
		return fmt.Errorf("%w: client cannot book himself", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Слоты начинаются только на границе получаса
	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if startMin%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d minutes", ErrInvalidInput, domain.SlotStepMinutes)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом
func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	return nil
}

// validateWithinHours проверяет, что слот целиком помещается в рабочие часы
func validateWithinHours(start types.TimeString, durationMinutes int, day domain.DayHours) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	dayStartMin, err := day.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid day start %q: %v", ErrInternal, day.Start, err)
	}

	dayEndMin, err := day.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid day end %q: %v", ErrInternal, day.End, err)
	}

	if startMin < dayStartMin || startMin+durationMinutes > dayEndMin {
		return fmt.Errorf("%w: slot %s (%d min) is outside %s-%s",
			ErrOutsideWorkingHours, start, durationMinutes, day.Start, day.End)
	}

	return nil
}

// isStartTaken проверяет, занято ли время начала активной записью.
// Сравнение идёт по точному совпадению времени начала в формате HH:MM.
func isStartTaken(start types.TimeString, appointments []*domain.Appointment) bool {
	for _, apt := range appointments {
		if apt.Status == domain.StatusCancelled {
			continue
		}

		if types.NewTimeString(apt.StartAt) == start {
			return true
		}
	}

	return false
}

// overlapsBlocked проверяет пересечение слота с заблокированными интервалами
func overlapsBlocked(slotStart, slotEnd time.Time, blocked []*domain.BlockedTimeSlot) bool {
	for _, b := range blocked {
		if b.Overlaps(slotStart, slotEnd) {
			return true
		}
	}

	return false
}

// resolveDayHours определяет рабочие часы на дату с учётом переопределения
func resolveDayHours(override *domain.CustomWorkingHours, weekly *domain.WorkingHours, date time.Time) domain.DayHours {
	if override != nil {
		return domain.DayHours{
			Start:   override.Start,
			End:     override.End,
			Enabled: true,
		}
	}

	return weekly.ForWeekday(date.Weekday())
}
