package get_available_slots

import (
	"fmt"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration_minutes must not be negative", ErrInvalidInput)
	}

	return nil
}

// normalizeDuration возвращает длительность услуги с учётом значения по умолчанию
func normalizeDuration(minutes int) int {
	if minutes <= 0 {
		return domain.DefaultServiceDurationMinutes
	}

	return minutes
}
