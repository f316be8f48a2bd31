package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/schedule"
)

// UseCase юзкейс получения доступных слотов на дату
type UseCase struct {
	scheduleRepo    ScheduleRepository
	blockedRepo     BlockedSlotRepository
	appointmentRepo AppointmentRepository
	log             Logger
}

func NewUseCase(
	schedule ScheduleRepository,
	blocked BlockedSlotRepository,
	appointments AppointmentRepository,
	log Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    schedule,
		blockedRepo:     blocked,
		appointmentRepo: appointments,
		log:             log,
	}
}

// Execute возвращает все слоты профессионала на дату с признаком доступности
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	duration := normalizeDuration(req.DurationMinutes)

	// 2. Ищем переопределение расписания на эту дату
	override, err := uc.scheduleRepo.GetCustomWorkingHoursForDate(ctx, req.ProfessionalID, req.Date.Format(domain.DateFormat))
	if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
		uc.log.Error("UseCase.Execute - failed to get custom working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get custom working hours: %v", ErrInternal, err)
	}

	// 3. Если переопределения нет, берём недельное расписание.
	// При отсутствии настроек используется расписание по умолчанию.
	var weekly *domain.WorkingHours
	if override == nil {
		weekly, err = uc.scheduleRepo.GetWorkingHours(ctx, req.ProfessionalID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
				uc.log.Error("UseCase.Execute - failed to get working hours: %v", err)
				return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
			}

			uc.log.Info("UseCase.Execute - no working hours for professional %d, using defaults", req.ProfessionalID)
			weekly = domain.DefaultWorkingHours(req.ProfessionalID)
		}
	}

	dayHours := resolveDayHours(override, weekly, req.Date)

	// 4. Выходной день - слотов нет
	if !dayHours.Enabled {
		return &Response{
			ProfessionalID: req.ProfessionalID,
			Date:           req.Date,
			Slots:          []domain.TimeSlot{},
		}, nil
	}

	// 5. Генерируем кандидатов с шагом 30 минут
	candidates, err := generateCandidateStarts(dayHours)
	if err != nil {
		uc.log.Error("UseCase.Execute - failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 6. Активные записи на эту дату
	date := req.Date
	appointments, err := uc.appointmentRepo.GetByProfessionalWithFilter(ctx, domain.ProfessionalAppointmentsFilter{
		ProfessionalID:   req.ProfessionalID,
		Date:             &date,
		IncludeCancelled: false,
	})
	if err != nil {
		uc.log.Error("UseCase.Execute - failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Блокировки, пересекающиеся с этой датой
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	blocked, err := uc.blockedRepo.GetByProfessionalInRange(ctx, req.ProfessionalID, dayStart, dayEnd)
	if err != nil {
		uc.log.Error("UseCase.Execute - failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	// 8. Собираем слоты с признаком доступности
	slots, err := buildSlots(req.Date, candidates, duration, appointments, blocked)
	if err != nil {
		uc.log.Error("UseCase.Execute - failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	return &Response{
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Slots:          slots,
	}, nil
}
