package get_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

// UseCase юзкейс получения календаря профессионала за период
type UseCase struct {
	blockedRepo     BlockedSlotRepository
	appointmentRepo AppointmentRepository
	log             Logger
}

func NewUseCase(blocked BlockedSlotRepository, appointments AppointmentRepository, log Logger) *UseCase {
	return &UseCase{
		blockedRepo:     blocked,
		appointmentRepo: appointments,
		log:             log,
	}
}

// Execute возвращает объединённый список событий календаря за период
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Календарь доступен только его владельцу
	if req.RequesterID != req.ProfessionalID {
		return nil, fmt.Errorf("%w: user %d is not professional %d", ErrAccessDenied, req.RequesterID, req.ProfessionalID)
	}

	from := truncateToDay(req.From)
	toEnd := truncateToDay(req.To).Add(24 * time.Hour)

	// 3. Блокировки, пересекающиеся с периодом
	blocked, err := uc.blockedRepo.GetByProfessionalInRange(ctx, req.ProfessionalID, from, toEnd)
	if err != nil {
		uc.log.Error("UseCase.Execute - failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	// 4. Неотменённые записи за период
	startDate := from
	endDate := truncateToDay(req.To)
	appointments, err := uc.appointmentRepo.GetByProfessionalWithFilter(ctx, domain.ProfessionalAppointmentsFilter{
		ProfessionalID:   req.ProfessionalID,
		StartDate:        &startDate,
		EndDate:          &endDate,
		IncludeCancelled: false,
	})
	if err != nil {
		uc.log.Error("UseCase.Execute - failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Объединяем в единый отсортированный список
	return &Response{
		ProfessionalID: req.ProfessionalID,
		From:           req.From,
		To:             req.To,
		Events:         buildEvents(blocked, appointments),
	}, nil
}

func validateRequest(req Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional_id must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > time.Duration(domain.MaxCalendarRangeDays)*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxCalendarRangeDays)
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
