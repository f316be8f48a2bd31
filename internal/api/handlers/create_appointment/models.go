package create_appointment

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	createAppointment "github.com/m04kA/BMP-ScheduleService/internal/usecase/create_appointment"
	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProfessionalID  int64  `json:"professionalId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes,omitempty"`

	ClientName       string  `json:"clientName"`
	ProfessionalName string  `json:"professionalName"`
	ServiceName      string  `json:"serviceName"`
	Location         *string `json:"location,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID               int64   `json:"id"`
	ClientID         int64   `json:"clientId"`
	ProfessionalID   int64   `json:"professionalId"`
	ServiceID        int64   `json:"serviceId"`
	Date             string  `json:"date"`
	StartAt          string  `json:"startAt"`
	EndAt            string  `json:"endAt"`
	Status           string  `json:"status"`
	ClientName       string  `json:"clientName"`
	ProfessionalName string  `json:"professionalName"`
	ServiceName      string  `json:"serviceName"`
	Location         *string `json:"location,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:         clientID,
		ProfessionalID:   r.ProfessionalID,
		ServiceID:        r.ServiceID,
		Date:             date,
		StartTime:        startTime,
		DurationMinutes:  r.DurationMinutes,
		ClientName:       r.ClientName,
		ProfessionalName: r.ProfessionalName,
		ServiceName:      r.ServiceName,
		Location:         r.Location,
		Notes:            r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:               resp.ID,
		ClientID:         resp.ClientID,
		ProfessionalID:   resp.ProfessionalID,
		ServiceID:        resp.ServiceID,
		Date:             resp.Date.Format(domain.DateFormat),
		StartAt:          resp.StartAt.Format(time.RFC3339),
		EndAt:            resp.EndAt.Format(time.RFC3339),
		Status:           resp.Status,
		ClientName:       resp.ClientName,
		ProfessionalName: resp.ProfessionalName,
		ServiceName:      resp.ServiceName,
		Location:         resp.Location,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
