package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

var (
	// ErrInvalidDayHours возвращается при некорректных рабочих часах дня
	ErrInvalidDayHours = errors.New("invalid day hours")

	// ErrInvalidDate возвращается при некорректной дате переопределения
	ErrInvalidDate = errors.New("invalid date")
)

// DayHoursDTO рабочие часы одного дня недели
type DayHoursDTO struct {
	Start   string `json:"start"`   // "09:00"
	End     string `json:"end"`     // "17:00"
	Enabled bool   `json:"enabled"`
}

// Validate проверяет формат и порядок границ рабочего дня
func (d DayHoursDTO) Validate() error {
	if !d.Enabled {
		return nil
	}

	start, err := types.NewTimeStringFromString(d.Start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDayHours, err)
	}

	end, err := types.NewTimeStringFromString(d.End)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDayHours, err)
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidDayHours, d.Start, d.End)
	}

	return nil
}

// ToDomain конвертирует DTO в domain модель
func (d DayHoursDTO) ToDomain() domain.DayHours {
	return domain.DayHours{
		Start:   types.TimeString(d.Start),
		End:     types.TimeString(d.End),
		Enabled: d.Enabled,
	}
}

// Request модели

// UpdateWorkingHoursRequest запрос на полное обновление недельного расписания
type UpdateWorkingHoursRequest struct {
	UserID         int64       `json:"userId"`
	ProfessionalID int64       `json:"professionalId"`
	Monday         DayHoursDTO `json:"monday"`
	Tuesday        DayHoursDTO `json:"tuesday"`
	Wednesday      DayHoursDTO `json:"wednesday"`
	Thursday       DayHoursDTO `json:"thursday"`
	Friday         DayHoursDTO `json:"friday"`
	Saturday       DayHoursDTO `json:"saturday"`
	Sunday         DayHoursDTO `json:"sunday"`
}

// Validate проверяет все семь дней недели
func (r *UpdateWorkingHoursRequest) Validate() error {
	days := map[string]DayHoursDTO{
		"monday":    r.Monday,
		"tuesday":   r.Tuesday,
		"wednesday": r.Wednesday,
		"thursday":  r.Thursday,
		"friday":    r.Friday,
		"saturday":  r.Saturday,
		"sunday":    r.Sunday,
	}

	for name, day := range days {
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// ToDomain конвертирует запрос в domain модель
func (r *UpdateWorkingHoursRequest) ToDomain() *domain.WorkingHours {
	return &domain.WorkingHours{
		ProfessionalID: r.ProfessionalID,
		Monday:         r.Monday.ToDomain(),
		Tuesday:        r.Tuesday.ToDomain(),
		Wednesday:      r.Wednesday.ToDomain(),
		Thursday:       r.Thursday.ToDomain(),
		Friday:         r.Friday.ToDomain(),
		Saturday:       r.Saturday.ToDomain(),
		Sunday:         r.Sunday.ToDomain(),
	}
}

// CustomHoursEntry переопределение расписания на одну дату
type CustomHoursEntry struct {
	Date  string `json:"date"`  // "2025-10-15"
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "14:00"
}

// UpdateCustomHoursRequest запрос на полную замену переопределений
type UpdateCustomHoursRequest struct {
	UserID         int64              `json:"userId"`
	ProfessionalID int64              `json:"professionalId"`
	Entries        []CustomHoursEntry `json:"entries"`
}

// ToDomain валидирует и конвертирует переопределения в domain модели
func (r *UpdateCustomHoursRequest) ToDomain() ([]*domain.CustomWorkingHours, error) {
	entries := make([]*domain.CustomWorkingHours, 0, len(r.Entries))
	seen := make(map[string]bool, len(r.Entries))

	for _, e := range r.Entries {
		date, err := time.Parse(domain.DateFormat, e.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
		}

		// Не больше одного переопределения на дату
		if seen[e.Date] {
			return nil, fmt.Errorf("%w: duplicate date %q", ErrInvalidDate, e.Date)
		}
		seen[e.Date] = true

		day := DayHoursDTO{Start: e.Start, End: e.End, Enabled: true}
		if err := day.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Date, err)
		}

		entries = append(entries, &domain.CustomWorkingHours{
			ProfessionalID: r.ProfessionalID,
			Date:           date,
			Start:          types.TimeString(e.Start),
			End:            types.TimeString(e.End),
		})
	}

	return entries, nil
}

// CreateBlockedSlotRequest запрос на создание блокировки
type CreateBlockedSlotRequest struct {
	UserID         int64     `json:"userId"`
	ProfessionalID int64     `json:"professionalId"`
	Title          string    `json:"title"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
}

// UpdateBlockedSlotRequest запрос на обновление блокировки
type UpdateBlockedSlotRequest struct {
	UserID  int64     `json:"userId"`
	Title   string    `json:"title"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// Response модели

// WorkingHoursResponse недельное расписание профессионала
type WorkingHoursResponse struct {
	ProfessionalID int64       `json:"professionalId"`
	Monday         DayHoursDTO `json:"monday"`
	Tuesday        DayHoursDTO `json:"tuesday"`
	Wednesday      DayHoursDTO `json:"wednesday"`
	Thursday       DayHoursDTO `json:"thursday"`
	Friday         DayHoursDTO `json:"friday"`
	Saturday       DayHoursDTO `json:"saturday"`
	Sunday         DayHoursDTO `json:"sunday"`
}

// CustomHoursResponse переопределение расписания на дату
type CustomHoursResponse struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// BlockedSlotResponse блокировка времени
type BlockedSlotResponse struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professionalId"`
	Title          string    `json:"title,omitempty"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ScheduleResponse полное расписание профессионала
type ScheduleResponse struct {
	WorkingHours WorkingHoursResponse  `json:"workingHours"`
	CustomHours  []CustomHoursResponse `json:"customHours"`
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// Методы конвертации

// FromDomainDayHours конвертирует domain модель в DTO
func FromDomainDayHours(d domain.DayHours) DayHoursDTO {
	return DayHoursDTO{
		Start:   d.Start.String(),
		End:     d.End.String(),
		Enabled: d.Enabled,
	}
}

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(wh *domain.WorkingHours) WorkingHoursResponse {
	return WorkingHoursResponse{
		ProfessionalID: wh.ProfessionalID,
		Monday:         FromDomainDayHours(wh.Monday),
		Tuesday:        FromDomainDayHours(wh.Tuesday),
		Wednesday:      FromDomainDayHours(wh.Wednesday),
		Thursday:       FromDomainDayHours(wh.Thursday),
		Friday:         FromDomainDayHours(wh.Friday),
		Saturday:       FromDomainDayHours(wh.Saturday),
		Sunday:         FromDomainDayHours(wh.Sunday),
	}
}

// FromDomainCustomHoursList конвертирует список переопределений в DTO
func FromDomainCustomHoursList(entries []*domain.CustomWorkingHours) []CustomHoursResponse {
	result := make([]CustomHoursResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, CustomHoursResponse{
			ID:    e.ID,
			Date:  e.Date.Format(domain.DateFormat),
			Start: e.Start.String(),
			End:   e.End.String(),
		})
	}

	return result
}

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(b *domain.BlockedTimeSlot) *BlockedSlotResponse {
	if b == nil {
		return nil
	}

	return &BlockedSlotResponse{
		ID:             b.ID,
		ProfessionalID: b.ProfessionalID,
		Title:          b.Title,
		StartAt:        b.StartAt,
		EndAt:          b.EndAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// FromDomainBlockedSlotList конвертирует список блокировок в DTO
func FromDomainBlockedSlotList(slots []*domain.BlockedTimeSlot) []BlockedSlotResponse {
	result := make([]BlockedSlotResponse, 0, len(slots))
	for _, b := range slots {
		result = append(result, *FromDomainBlockedSlot(b))
	}

	return result
}
