package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/schedule"
)

// UseCase use case для создания записи к профессионалу
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	blockedRepo     BlockedSlotRepository
	notifyClient    NotifyServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	blockedRepo BlockedSlotRepository,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		blockedRepo:     blockedRepo,
		notifyClient:    notifyClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Использует сериализуемую транзакцию для предотвращения двойного бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, professional=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата записи не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultServiceDurationMinutes
	}

	startAt, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	endAt := startAt.Add(time.Duration(duration) * time.Minute)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Определяем рабочие часы на дату
		override, err := uc.scheduleRepo.GetCustomWorkingHoursForDate(txCtx, req.ProfessionalID, req.Date.Format(domain.DateFormat))
		if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			uc.logger.Error("CreateAppointment: failed to get custom working hours: %v", err)
			return fmt.Errorf("%w: failed to get custom working hours: %v", ErrInternal, err)
		}

		var weekly *domain.WorkingHours
		if override == nil {
			weekly, err = uc.scheduleRepo.GetWorkingHours(txCtx, req.ProfessionalID)
			if err != nil {
				if !errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
					uc.logger.Error("CreateAppointment: failed to get working hours: %v", err)
					return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
				}

				uc.logger.Info("CreateAppointment: no working hours for professional %d, using defaults", req.ProfessionalID)
				weekly = domain.DefaultWorkingHours(req.ProfessionalID)
			}
		}

		dayHours := resolveDayHours(override, weekly, req.Date)

		// 3.2. У профессионала должен быть рабочий день
		if !dayHours.Enabled {
			uc.logger.Warn("CreateAppointment: professional %d does not work on %s",
				req.ProfessionalID, req.Date.Format(domain.DateFormat))
			return ErrDayOff
		}

		// 3.3. Слот должен помещаться в рабочие часы
		if err := validateWithinHours(req.StartTime, duration, dayHours); err != nil {
			uc.logger.Warn("CreateAppointment: working hours validation failed: %v", err)
			return err
		}

		// 3.4. Получаем активные записи на эту дату с блокировкой (FOR UPDATE)
		date := req.Date
		appointments, err := uc.appointmentRepo.GetByProfessionalWithFilter(txCtx, domain.ProfessionalAppointmentsFilter{
			ProfessionalID:   req.ProfessionalID,
			Date:             &date,
			IncludeCancelled: false,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.5. Время начала не должно быть занято другой записью
		if isStartTaken(req.StartTime, appointments) {
			uc.logger.Warn("CreateAppointment: slot %s on %s is already booked",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 3.6. Слот не должен пересекаться с блокировками
		dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
		blocked, err := uc.blockedRepo.GetByProfessionalInRange(txCtx, req.ProfessionalID, dayStart, dayStart.Add(24*time.Hour))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get blocked slots: %v", err)
			return fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
		}

		if overlapsBlocked(startAt, endAt, blocked) {
			uc.logger.Warn("CreateAppointment: slot %s on %s overlaps a blocked interval",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 3.7. Создаем запись в статусе requested
		appointment := &domain.Appointment{
			ClientID:       req.ClientID,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			Date:           dayStart,
			StartAt:        startAt,
			EndAt:          endAt,
			Status:         domain.StatusRequested,
			// Денормализация данных профиля и услуги
			ClientName:       req.ClientName,
			ProfessionalName: req.ProfessionalName,
			ServiceName:      req.ServiceName,
			Location:         req.Location,
			Notes:            req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 4. Уведомляем профессионала о новой заявке.
	// Ошибка доставки не откатывает созданную запись.
	uc.notifyProfessional(ctx, result)

	return &Response{
		ID:               result.ID,
		ClientID:         result.ClientID,
		ProfessionalID:   result.ProfessionalID,
		ServiceID:        result.ServiceID,
		Date:             result.Date,
		StartAt:          result.StartAt,
		EndAt:            result.EndAt,
		Status:           string(result.Status),
		ClientName:       result.ClientName,
		ProfessionalName: result.ProfessionalName,
		ServiceName:      result.ServiceName,
		Location:         result.Location,
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// notifyProfessional отправляет профессионалу уведомление о новой заявке
func (uc *UseCase) notifyProfessional(ctx context.Context, apt *domain.Appointment) {
	body := fmt.Sprintf("%s requested %s on %s at %s",
		apt.ClientName, apt.ServiceName, apt.Date.Format(domain.DateFormat), apt.StartAt.Format(domain.TimeFormat))

	err := uc.notifyClient.Notify(ctx, apt.ProfessionalID, "New appointment request", body, map[string]string{
		"appointment_id": fmt.Sprintf("%d", apt.ID),
		"status":         string(apt.Status),
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to notify professional %d: %v", apt.ProfessionalID, err)
	}
}
