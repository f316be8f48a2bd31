package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	blockedRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/blocked"
	scheduleRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/BMP-ScheduleService/internal/service/schedule/models"
)

// Service сервис управления расписанием профессионала
type Service struct {
	scheduleRepo ScheduleRepository
	blockedRepo  BlockedSlotRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	blockedRepo BlockedSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		blockedRepo:  blockedRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает полное расписание профессионала:
// недельное расписание, переопределения на даты и блокировки.
// Если расписание не настроено, возвращается расписание по умолчанию.
func (s *Service) GetSchedule(ctx context.Context, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for professional=%d", professionalID)

	if professionalID <= 0 {
		return nil, fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	workingHours, err := s.scheduleRepo.GetWorkingHours(ctx, professionalID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			s.logger.Error("GetSchedule: repository error for professional=%d: %v", professionalID, err)
			return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("GetSchedule: no working hours for professional=%d, using defaults", professionalID)
		workingHours = domain.DefaultWorkingHours(professionalID)
	}

	customHours, err := s.scheduleRepo.GetCustomWorkingHours(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get custom hours for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	blockedSlots, err := s.blockedRepo.GetByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get blocked slots for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for professional=%d (%d overrides, %d blocked slots)",
		professionalID, len(customHours), len(blockedSlots))

	return &models.ScheduleResponse{
		WorkingHours: models.FromDomainWorkingHours(workingHours),
		CustomHours:  models.FromDomainCustomHoursList(customHours),
		BlockedSlots: models.FromDomainBlockedSlotList(blockedSlots),
	}, nil
}

// SaveWorkingHours полностью заменяет недельное расписание профессионала
// Доступно только самому профессионалу
func (s *Service) SaveWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SaveWorkingHours: updating working hours for professional=%d by user=%d",
		req.ProfessionalID, req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("SaveWorkingHours: access denied for user=%d to professional=%d", req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if err := req.Validate(); err != nil {
		s.logger.Warn("SaveWorkingHours: validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	workingHours := req.ToDomain()
	if err := s.scheduleRepo.SaveWorkingHours(ctx, workingHours); err != nil {
		s.logger.Error("SaveWorkingHours: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: SaveWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveWorkingHours: successfully updated working hours for professional=%d", req.ProfessionalID)

	resp := models.FromDomainWorkingHours(workingHours)
	return &resp, nil
}

// ReplaceCustomHours полностью заменяет переопределения расписания.
// Старые переопределения помечаются удалёнными, новые вставляются одной транзакцией.
func (s *Service) ReplaceCustomHours(ctx context.Context, req *models.UpdateCustomHoursRequest) ([]models.CustomHoursResponse, error) {
	s.logger.Info("ReplaceCustomHours: replacing %d overrides for professional=%d by user=%d",
		len(req.Entries), req.ProfessionalID, req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("ReplaceCustomHours: access denied for user=%d to professional=%d", req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	entries, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("ReplaceCustomHours: validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceCustomWorkingHours(txCtx, req.ProfessionalID, entries)
	})
	if err != nil {
		s.logger.Error("ReplaceCustomHours: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ReplaceCustomHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceCustomHours: successfully replaced overrides for professional=%d", req.ProfessionalID)
	return models.FromDomainCustomHoursList(entries), nil
}

// CreateBlockedSlot создает блокировку времени
// Доступно только самому профессионалу
func (s *Service) CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("CreateBlockedSlot: creating blocked slot for professional=%d by user=%d",
		req.ProfessionalID, req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("CreateBlockedSlot: access denied for user=%d to professional=%d", req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if err := validateBlockedInterval(req.Title, req.StartAt, req.EndAt); err != nil {
		s.logger.Warn("CreateBlockedSlot: validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, err
	}

	created, err := s.blockedRepo.Create(ctx, &domain.BlockedTimeSlot{
		ProfessionalID: req.ProfessionalID,
		Title:          req.Title,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
	})
	if err != nil {
		s.logger.Error("CreateBlockedSlot: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: CreateBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedSlot: successfully created blocked slot id=%d", created.ID)
	return models.FromDomainBlockedSlot(created), nil
}

// UpdateBlockedSlot обновляет блокировку
// Доступно только владельцу блокировки
func (s *Service) UpdateBlockedSlot(ctx context.Context, id int64, req *models.UpdateBlockedSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("UpdateBlockedSlot: updating blocked slot id=%d by user=%d", id, req.UserID)

	slot, err := s.getBlockedSlot(ctx, "UpdateBlockedSlot", id, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := validateBlockedInterval(req.Title, req.StartAt, req.EndAt); err != nil {
		s.logger.Warn("UpdateBlockedSlot: validation failed for slot id=%d: %v", id, err)
		return nil, err
	}

	slot.Title = req.Title
	slot.StartAt = req.StartAt
	slot.EndAt = req.EndAt

	if err := s.blockedRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedSlotNotFound) {
			return nil, ErrBlockedSlotNotFound
		}
		s.logger.Error("UpdateBlockedSlot: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBlockedSlot: successfully updated blocked slot id=%d", id)
	return models.FromDomainBlockedSlot(slot), nil
}

// DeleteBlockedSlot удаляет блокировку
// Доступно только владельцу блокировки
func (s *Service) DeleteBlockedSlot(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteBlockedSlot: deleting blocked slot id=%d by user=%d", id, userID)

	if _, err := s.getBlockedSlot(ctx, "DeleteBlockedSlot", id, userID); err != nil {
		return err
	}

	if err := s.blockedRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedSlotNotFound) {
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("DeleteBlockedSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedSlot: successfully deleted blocked slot id=%d", id)
	return nil
}

// Вспомогательные методы

// getBlockedSlot получает блокировку и проверяет права владельца
func (s *Service) getBlockedSlot(ctx context.Context, op string, id int64, userID int64) (*domain.BlockedTimeSlot, error) {
	slot, err := s.blockedRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("%s: blocked slot id=%d not found", op, id)
			return nil, ErrBlockedSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if slot.ProfessionalID != userID {
		s.logger.Warn("%s: access denied for user=%d to slot id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return slot, nil
}

// validateBlockedInterval проверяет заголовок и границы блокировки
func validateBlockedInterval(title string, startAt, endAt time.Time) error {
	if len(title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if startAt.IsZero() || endAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !endAt.After(startAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	return nil
}
