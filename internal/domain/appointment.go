package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownStatus возвращается при попытке сконвертировать неизвестный статус
var ErrUnknownStatus = errors.New("unknown appointment status")

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusPending   AppointmentStatus = "pending"
	StatusPrebooked AppointmentStatus = "prebooked"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a client's appointment with a professional
type Appointment struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64
	ServiceID      int64

	Date    time.Time // Дата записи (без времени)
	StartAt time.Time // Точное время начала
	EndAt   time.Time // Точное время окончания

	Status       AppointmentStatus
	StatusReason *string // Причина последнего перехода статуса

	// Denormalized data for history
	ClientName       string
	ProfessionalName string
	ServiceName      string

	Location     *string
	Notes        *string
	CalendarSync *string // ID события во внешнем календаре, если запись синхронизирована

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further status transitions are permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsAwaitingApproval returns true if the appointment is waiting for the professional to approve it
func (a *Appointment) IsAwaitingApproval() bool {
	return a.Status == StatusRequested || a.Status == StatusPending || a.Status == StatusPrebooked
}

// CanBeApproved returns true if the appointment can transition to SCHEDULED
func (a *Appointment) CanBeApproved() bool {
	return a.IsAwaitingApproval()
}

// CanBeCancelled returns true if the appointment can transition to CANCELLED
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsTerminal()
}

// CanBeRescheduled returns true if the appointment time can be changed
func (a *Appointment) CanBeRescheduled() bool {
	return !a.IsTerminal()
}

// CanBeCompleted returns true if the appointment can transition to COMPLETED
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusScheduled
}

// ParseAppointmentStatus конвертирует строку в AppointmentStatus
// Регистр не учитывается: исторически UI присылал статусы и в верхнем, и в нижнем регистре,
// нормализация происходит здесь, на границе, и нигде больше
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range AllStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrUnknownStatus
}

// ProfessionalAppointmentsFilter фильтр для получения записей профессионала
type ProfessionalAppointmentsFilter struct {
	ProfessionalID   int64              // Обязательный параметр
	Date             *time.Time         // Фильтр по конкретной дате (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}
