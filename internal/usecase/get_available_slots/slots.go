package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

// resolveDayHours определяет рабочие часы на конкретную дату.
// Переопределение на дату имеет приоритет над недельным расписанием.
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

// generateCandidateStarts генерирует времена начала слотов с шагом 30 минут.
// Слот попадает в список, пока его начало строго раньше конца рабочего дня.
func generateCandidateStarts(day domain.DayHours) ([]types.TimeString, error) {
	startMin, err := day.Start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid day start %q: %w", day.Start, err)
	}

	endMin, err := day.End.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid day end %q: %w", day.End, err)
	}

	var candidates []types.TimeString
	for cur := startMin; cur < endMin; cur += domain.SlotStepMinutes {
		candidates = append(candidates, types.TimeString(fmt.Sprintf("%02d:%02d", cur/60, cur%60)))
	}

	return candidates, nil
}

// isBookedAt проверяет, занято ли время начала слота активной записью.
// Сравнение идёт по точному совпадению времени начала в формате HH:MM.
func isBookedAt(candidate types.TimeString, appointments []*domain.Appointment) bool {
	for _, apt := range appointments {
		if apt.Status == domain.StatusCancelled {
			continue
		}

		if types.NewTimeString(apt.StartAt) == candidate {
			return true
		}
	}

	return false
}

// overlapsBlocked проверяет пересечение слота с заблокированными интервалами.
// Интервалы полуоткрытые: касание границ пересечением не считается.
func overlapsBlocked(slotStart, slotEnd time.Time, blocked []*domain.BlockedTimeSlot) bool {
	for _, b := range blocked {
		if b.Overlaps(slotStart, slotEnd) {
			return true
		}
	}

	return false
}

// buildSlots собирает слоты на дату с признаком доступности
func buildSlots(
	date time.Time,
	candidates []types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	blocked []*domain.BlockedTimeSlot,
) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(candidates))

	for _, candidate := range candidates {
		slotStart, err := candidate.OnDate(date)
		if err != nil {
			return nil, fmt.Errorf("invalid slot time %q: %w", candidate, err)
		}
		slotEnd := slotStart.Add(time.Duration(domain.SlotStepMinutes) * time.Minute)

		available := !isBookedAt(candidate, appointments) && !overlapsBlocked(slotStart, slotEnd, blocked)

		slots = append(slots, domain.TimeSlot{
			StartAt:         slotStart,
			Time:            candidate,
			DurationMinutes: durationMinutes,
			Available:       available,
			FormattedTime:   candidate.Format12Hour(),
		})
	}

	return slots, nil
}
