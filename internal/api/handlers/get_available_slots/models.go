package get_available_slots

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/BMP-ScheduleService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProfessionalID int64           `json:"professionalId"`
	Date           string          `json:"date"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartAt         string `json:"startAt"` // ISO 8601
	Time            string `json:"time"`    // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	FormattedTime   string `json:"formattedTime"` // "10:00 AM"
}

// ToUseCaseRequest формирует запрос к use case с парсингом даты
func ToUseCaseRequest(professionalID int64, dateStr string, durationMinutes int) (getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return getAvailableSlots.Request{}, err
	}

	return getAvailableSlots.Request{
		ProfessionalID:  professionalID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, AvailableSlot{
			StartAt:         s.StartAt.Format(time.RFC3339),
			Time:            s.Time.String(),
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
			FormattedTime:   s.FormattedTime,
		})
	}

	return &AvailableSlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date.Format(domain.DateFormat),
		Slots:          slots,
	}
}
