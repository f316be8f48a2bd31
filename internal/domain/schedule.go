package domain

import (
	"time"

	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

// DayHours represents the working window for a single weekday
type DayHours struct {
	Start   types.TimeString
	End     types.TimeString
	Enabled bool
}

// WorkingHours represents a professional's default weekly schedule
// Exactly one record per professional, mutated wholesale (all seven days)
type WorkingHours struct {
	ProfessionalID int64

	Monday    DayHours
	Tuesday   DayHours
	Wednesday DayHours
	Thursday  DayHours
	Friday    DayHours
	Saturday  DayHours
	Sunday    DayHours

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ForWeekday returns the working window for the given weekday
func (w *WorkingHours) ForWeekday(weekday time.Weekday) DayHours {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DayHours{Enabled: false}
	}
}

// DefaultWorkingHours возвращает расписание по умолчанию для профессионала без настроек:
// 09:00-17:00 в будние дни, выходные отключены
func DefaultWorkingHours(professionalID int64) *WorkingHours {
	weekday := DayHours{
		Start:   types.TimeString(DefaultDayStart),
		End:     types.TimeString(DefaultDayEnd),
		Enabled: true,
	}
	weekend := DayHours{
		Start:   types.TimeString(DefaultDayStart),
		End:     types.TimeString(DefaultDayEnd),
		Enabled: false,
	}

	return &WorkingHours{
		ProfessionalID: professionalID,
		Monday:         weekday,
		Tuesday:        weekday,
		Wednesday:      weekday,
		Thursday:       weekday,
		Friday:         weekday,
		Saturday:       weekend,
		Sunday:         weekend,
	}
}

// CustomWorkingHours represents a date-specific override of the weekly schedule
// Presence of a non-deleted override replaces the weekday default entirely
type CustomWorkingHours struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time // Календарная дата (без времени)
	Start          types.TimeString
	End            types.TimeString
	DeletedAt      *time.Time // Soft-delete: запись помечается удалённой, а не стирается
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDeleted returns true if the override has been soft-deleted
func (c *CustomWorkingHours) IsDeleted() bool {
	return c.DeletedAt != nil
}
