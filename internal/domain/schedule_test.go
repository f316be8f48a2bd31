package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

func TestBlockedTimeSlot_Overlaps(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	// Блокировка 14:00-15:00
	blocked := &BlockedTimeSlot{StartAt: at(14, 0), EndAt: at(15, 0)}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"inside", at(14, 15), at(14, 45), true},
		{"covers", at(13, 0), at(16, 0), true},
		{"partial left", at(13, 30), at(14, 30), true},
		{"partial right", at(14, 30), at(15, 30), true},
		{"before", at(12, 0), at(13, 0), false},
		{"after", at(16, 0), at(17, 0), false},
		{"touching start", at(13, 0), at(14, 0), false},
		{"touching end", at(15, 0), at(16, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, blocked.Overlaps(tt.start, tt.end))
		})
	}
}

func TestWorkingHours_ForWeekday(t *testing.T) {
	hours := &WorkingHours{
		Monday:  DayHours{Start: "08:00", End: "16:00", Enabled: true},
		Tuesday: DayHours{Start: "10:00", End: "18:00", Enabled: true},
		Sunday:  DayHours{Enabled: false},
	}

	assert.Equal(t, types.TimeString("08:00"), hours.ForWeekday(time.Monday).Start)
	assert.Equal(t, types.TimeString("10:00"), hours.ForWeekday(time.Tuesday).Start)
	assert.False(t, hours.ForWeekday(time.Sunday).Enabled)
}

func TestDefaultWorkingHours(t *testing.T) {
	hours := DefaultWorkingHours(42)

	assert.Equal(t, int64(42), hours.ProfessionalID)

	for _, weekday := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		day := hours.ForWeekday(weekday)
		assert.True(t, day.Enabled, "weekday %s", weekday)
		assert.Equal(t, types.TimeString("09:00"), day.Start)
		assert.Equal(t, types.TimeString("17:00"), day.End)
	}

	assert.False(t, hours.ForWeekday(time.Saturday).Enabled)
	assert.False(t, hours.ForWeekday(time.Sunday).Enabled)
}

func TestCustomWorkingHours_IsDeleted(t *testing.T) {
	now := time.Now()

	active := &CustomWorkingHours{}
	assert.False(t, active.IsDeleted())

	deleted := &CustomWorkingHours{DeletedAt: &now}
	assert.True(t, deleted.IsDeleted())
}

func TestNormalizeEventStatus(t *testing.T) {
	assert.Equal(t, EventStatusPending, NormalizeEventStatus(StatusRequested))
	assert.Equal(t, EventStatusPending, NormalizeEventStatus(StatusPending))
	assert.Equal(t, EventStatusPending, NormalizeEventStatus(StatusPrebooked))
	assert.Equal(t, EventStatusCancelled, NormalizeEventStatus(StatusCancelled))
	assert.Equal(t, EventStatusScheduled, NormalizeEventStatus(StatusScheduled))
	assert.Equal(t, EventStatusScheduled, NormalizeEventStatus(StatusCompleted))
}
