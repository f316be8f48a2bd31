package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/BMP-ScheduleService/internal/service/appointments/models"
	"github.com/m04kA/BMP-ScheduleService/pkg/ptr"
)

// Service сервис жизненного цикла записей.
// Управляет переходами статусов и сопутствующими уведомлениями.
type Service struct {
	appointmentRepo AppointmentRepository
	notifyClient    NotifyServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	notifyClient NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifyClient:    notifyClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Доступ имеют только клиент и профессионал этой записи
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if appointment.ClientID != userID && appointment.ProfessionalID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetProfessionalAppointments получает записи профессионала с гибкой фильтрацией
// Поддерживает фильтрацию по дате, периоду, статусу и включению отменённых записей
// Доступно только самому профессионалу
func (s *Service) GetProfessionalAppointments(ctx context.Context, req *models.GetProfessionalAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetProfessionalAppointments: fetching appointments for professional=%d, user=%d",
		req.ProfessionalID, req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("GetProfessionalAppointments: access denied for user=%d to professional=%d",
			req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProfessionalAppointments: invalid filter for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByProfessionalWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProfessionalAppointments: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfessionalAppointments: successfully fetched %d appointments for professional=%d",
		len(appointments), req.ProfessionalID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d",
		len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Approve подтверждает запись, ожидающую одобрения
// Доступно только профессионалу записи
func (s *Service) Approve(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Approve: approving appointment id=%d by user=%d", id, userID)

	appointment, err := s.getAppointment(ctx, "Approve", id)
	if err != nil {
		return err
	}

	if appointment.ProfessionalID != userID {
		s.logger.Warn("Approve: access denied for user=%d to appointment id=%d", userID, id)
		return ErrAccessDenied
	}

	if !appointment.CanBeApproved() {
		s.logger.Warn("Approve: appointment id=%d cannot be approved, status=%s", id, appointment.Status)
		return fmt.Errorf("%w: cannot approve appointment in status %s", ErrInvalidTransition, appointment.Status)
	}

	if err := s.updateStatus(ctx, "Approve", id, domain.StatusScheduled, ptr.Ptr(domain.ReasonApprovedByProfessional)); err != nil {
		return err
	}

	s.logger.Info("Approve: successfully approved appointment id=%d", id)

	// Уведомляем клиента о подтверждении
	s.notify(ctx, appointment.ClientID, "Appointment confirmed",
		fmt.Sprintf("%s on %s at %s is confirmed",
			appointment.ServiceName, appointment.Date.Format(domain.DateFormat), appointment.StartAt.Format(domain.TimeFormat)),
		appointment.ID, domain.StatusScheduled)

	return nil
}

// Cancel отменяет запись
// Клиент и профессионал могут отменить запись в любом нетерминальном статусе
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, req.UserID)

	appointment, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	isClient := appointment.ClientID == req.UserID
	isProfessional := appointment.ProfessionalID == req.UserID

	if !isClient && !isProfessional {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
		return fmt.Errorf("%w: cannot cancel appointment in status %s", ErrInvalidTransition, appointment.Status)
	}

	// Причина отмены по умолчанию зависит от того, кто отменяет
	reason := req.Reason
	if reason == nil || *reason == "" {
		if isClient {
			reason = ptr.Ptr(domain.ReasonCancelledByClient)
		} else {
			reason = ptr.Ptr(domain.ReasonCancelledByProfessional)
		}
	}

	if len(*reason) > domain.MaxStatusReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxStatusReasonLength)
	}

	if err := s.updateStatus(ctx, "Cancel", id, domain.StatusCancelled, reason); err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)

	// Уведомляем вторую сторону записи
	recipientID := appointment.ProfessionalID
	if isProfessional {
		recipientID = appointment.ClientID
	}

	s.notify(ctx, recipientID, "Appointment cancelled",
		fmt.Sprintf("%s on %s at %s was cancelled: %s",
			appointment.ServiceName, appointment.Date.Format(domain.DateFormat),
			appointment.StartAt.Format(domain.TimeFormat), *reason),
		appointment.ID, domain.StatusCancelled)

	return nil
}

// Reschedule переносит запись на новое время
// Доступно только профессионалу; запись возвращается в статус pending
// и требует повторного подтверждения клиентом
func (s *Service) Reschedule(ctx context.Context, id int64, req *models.RescheduleAppointmentRequest) error {
	s.logger.Info("Reschedule: rescheduling appointment id=%d by user=%d to %s",
		id, req.UserID, req.NewStart.Format(time.RFC3339))

	if req.NewStart.IsZero() || req.NewEnd.IsZero() {
		return fmt.Errorf("%w: newStart and newEnd are required", ErrInvalidInput)
	}

	if !req.NewEnd.After(req.NewStart) {
		return fmt.Errorf("%w: newEnd must be after newStart", ErrInvalidInput)
	}

	appointment, err := s.getAppointment(ctx, "Reschedule", id)
	if err != nil {
		return err
	}

	if appointment.ProfessionalID != req.UserID {
		s.logger.Warn("Reschedule: access denied for user=%d to appointment id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	if !appointment.CanBeRescheduled() {
		s.logger.Warn("Reschedule: appointment id=%d cannot be rescheduled, status=%s", id, appointment.Status)
		return fmt.Errorf("%w: cannot reschedule appointment in status %s", ErrInvalidTransition, appointment.Status)
	}

	if err := s.appointmentRepo.Reschedule(ctx, id, req.NewStart, req.NewEnd); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Reschedule: appointment id=%d not found during update", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Reschedule: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reschedule: successfully rescheduled appointment id=%d to %s",
		id, req.NewStart.Format(time.RFC3339))

	// Уведомляем клиента, что запись требует повторного подтверждения
	s.notify(ctx, appointment.ClientID, "Appointment rescheduled",
		fmt.Sprintf("%s was moved to %s at %s and needs your confirmation",
			appointment.ServiceName, req.NewStart.Format(domain.DateFormat), req.NewStart.Format(domain.TimeFormat)),
		appointment.ID, domain.StatusPending)

	return nil
}

// Complete отмечает подтверждённую запись как завершённую
// Доступно только профессионалу записи
func (s *Service) Complete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, userID)

	appointment, err := s.getAppointment(ctx, "Complete", id)
	if err != nil {
		return err
	}

	if appointment.ProfessionalID != userID {
		s.logger.Warn("Complete: access denied for user=%d to appointment id=%d", userID, id)
		return ErrAccessDenied
	}

	if !appointment.CanBeCompleted() {
		s.logger.Warn("Complete: appointment id=%d cannot be completed, status=%s", id, appointment.Status)
		return fmt.Errorf("%w: cannot complete appointment in status %s", ErrInvalidTransition, appointment.Status)
	}

	if err := s.updateStatus(ctx, "Complete", id, domain.StatusCompleted, nil); err != nil {
		return err
	}

	s.logger.Info("Complete: successfully completed appointment id=%d", id)

	s.notify(ctx, appointment.ClientID, "Appointment completed",
		fmt.Sprintf("%s on %s is completed",
			appointment.ServiceName, appointment.Date.Format(domain.DateFormat)),
		appointment.ID, domain.StatusCompleted)

	return nil
}

// Вспомогательные методы

// getAppointment получает запись по ID с маппингом ошибок репозитория
func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return appointment, nil
}

// updateStatus обновляет статус записи с маппингом ошибок репозитория
func (s *Service) updateStatus(ctx context.Context, op string, id int64, status domain.AppointmentStatus, reason *string) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, id, status, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found during update", op, id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return nil
}

// notify отправляет уведомление после успешного перехода статуса.
// Ошибка доставки логируется и не откатывает переход.
func (s *Service) notify(ctx context.Context, userID int64, title, body string, appointmentID int64, status domain.AppointmentStatus) {
	err := s.notifyClient.Notify(ctx, userID, title, body, map[string]string{
		"appointment_id": fmt.Sprintf("%d", appointmentID),
		"status":         string(status),
	})
	if err != nil {
		s.logger.Warn("notify: failed to notify user %d about appointment %d: %v", userID, appointmentID, err)
	}
}
