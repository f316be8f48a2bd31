package models

import (
	"errors"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID int64   `json:"userId"`
	Reason *string `json:"reason,omitempty"`
}

// RescheduleAppointmentRequest запрос на перенос записи
type RescheduleAppointmentRequest struct {
	UserID   int64     `json:"userId"`
	NewStart time.Time `json:"newStart"`
	NewEnd   time.Time `json:"newEnd"`
}

// GetProfessionalAppointmentsRequest запрос на получение записей профессионала
type GetProfessionalAppointmentsRequest struct {
	UserID           int64      `json:"userId"`
	ProfessionalID   int64      `json:"professionalId"`
	Date             *time.Time `json:"date,omitempty"`             // Записи на конкретную дату (опционально)
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProfessionalAppointmentsRequest) ToDomainFilter() (domain.ProfessionalAppointmentsFilter, error) {
	filter := domain.ProfessionalAppointmentsFilter{
		ProfessionalID:   r.ProfessionalID,
		Date:             r.Date,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             int64  `json:"id"`
	ClientID       int64  `json:"clientId"`
	ProfessionalID int64  `json:"professionalId"`
	ServiceID      int64  `json:"serviceId"`
	Date           string `json:"date"`    // "2025-10-15"
	StartAt        string `json:"startAt"` // ISO 8601
	EndAt          string `json:"endAt"`   // ISO 8601
	Status         string `json:"status"`

	// Денормализованные данные
	ClientName       string  `json:"clientName"`
	ProfessionalName string  `json:"professionalName"`
	ServiceName      string  `json:"serviceName"`
	Location         *string `json:"location,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	StatusReason *string `json:"statusReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:               a.ID,
		ClientID:         a.ClientID,
		ProfessionalID:   a.ProfessionalID,
		ServiceID:        a.ServiceID,
		Date:             a.Date.Format(domain.DateFormat),
		StartAt:          a.StartAt.Format(time.RFC3339),
		EndAt:            a.EndAt.Format(time.RFC3339),
		Status:           string(a.Status),
		ClientName:       a.ClientName,
		ProfessionalName: a.ProfessionalName,
		ServiceName:      a.ServiceName,
		Location:         a.Location,
		Notes:            a.Notes,
		StatusReason:     a.StatusReason,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, *FromDomainAppointment(a))
	}

	return &AppointmentListResponse{Appointments: result}
}

// ToDomainAppointmentStatus конвертирует строку в domain статус.
// Регистр не учитывается.
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	parsed, err := domain.ParseAppointmentStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}

	return parsed, nil
}
