package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

type fakeScheduleRepo struct {
	weekly    *domain.WorkingHours
	weeklyErr error
	override  *domain.CustomWorkingHours
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64) (*domain.WorkingHours, error) {
	if f.weeklyErr != nil {
		return nil, f.weeklyErr
	}
	return f.weekly, nil
}

func (f *fakeScheduleRepo) GetCustomWorkingHoursForDate(_ context.Context, _ int64, _ string) (*domain.CustomWorkingHours, error) {
	if f.override == nil {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return f.override, nil
}

type fakeBlockedRepo struct {
	slots []*domain.BlockedTimeSlot
}

func (f *fakeBlockedRepo) GetByProfessionalInRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockedTimeSlot, error) {
	return f.slots, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByProfessionalWithFilter(_ context.Context, _ domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fullWeekHours(start, end string) *domain.WorkingHours {
	day := domain.DayHours{Start: types.TimeString(start), End: types.TimeString(end), Enabled: true}
	return &domain.WorkingHours{
		ProfessionalID: 1,
		Monday:         day,
		Tuesday:        day,
		Wednesday:      day,
		Thursday:       day,
		Friday:         day,
		Saturday:       domain.DayHours{Enabled: false},
		Sunday:         domain.DayHours{Enabled: false},
	}
}

func at(date time.Time, hhmm string) time.Time {
	ts, err := types.TimeString(hhmm).OnDate(date)
	if err != nil {
		panic(err)
	}
	return ts
}

// Вторник, рабочий день по недельному расписанию.
var testDate = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func newTestUseCase(schedule *fakeScheduleRepo, blocked *fakeBlockedRepo, appointments *fakeAppointmentRepo) *UseCase {
	return NewUseCase(schedule, blocked, appointments, nopLogger{})
}

func TestExecute_FullDayWithBookedAndBlocked(t *testing.T) {
	// Рабочий день 09:00-17:00, запись на 10:00, блокировка 14:00-15:00.
	uc := newTestUseCase(
		&fakeScheduleRepo{weekly: fullWeekHours("09:00", "17:00")},
		&fakeBlockedRepo{slots: []*domain.BlockedTimeSlot{
			{ID: 1, ProfessionalID: 1, Title: "Lunch", StartAt: at(testDate, "14:00"), EndAt: at(testDate, "15:00")},
		}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			{ID: 1, ProfessionalID: 1, StartAt: at(testDate, "10:00"), EndAt: at(testDate, "10:30"), Status: domain.StatusScheduled},
		}},
	)

	resp, err := uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 16)

	unavailable := map[string]bool{}
	for _, slot := range resp.Slots {
		if !slot.Available {
			unavailable[slot.Time.String()] = true
		}
	}

	assert.Equal(t, map[string]bool{"10:00": true, "14:00": true, "14:30": true}, unavailable)
	assert.Equal(t, "09:00", resp.Slots[0].Time.String())
	assert.Equal(t, "16:30", resp.Slots[15].Time.String())
	assert.Equal(t, "9:00 AM", resp.Slots[0].FormattedTime)
}

func TestExecute_SlotsAreSortedAndUnique(t *testing.T) {
	uc := newTestUseCase(
		&fakeScheduleRepo{weekly: fullWeekHours("09:00", "12:00")},
		&fakeBlockedRepo{},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: testDate})
	require.NoError(t, err)

	seen := map[string]bool{}
	prev := -1
	for _, slot := range resp.Slots {
		assert.False(t, seen[slot.Time.String()], "duplicate slot %s", slot.Time)
		seen[slot.Time.String()] = true

		cur, err := slot.Time.Minutes()
		require.NoError(t, err)
		assert.Greater(t, cur, prev)
		prev = cur
	}
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	uc := newTestUseCase(
		&fakeScheduleRepo{weekly: fullWeekHours("09:00", "10:00")},
		&fakeBlockedRepo{},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			{ID: 1, ProfessionalID: 1, StartAt: at(testDate, "09:00"), Status: domain.StatusCancelled},
		}},
	)

	resp, err := uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[0].Available)
	assert.True(t, resp.Slots[1].Available)
}

func TestExecute_DisabledDayReturnsEmpty(t *testing.T) {
	// Суббота выключена в недельном расписании.
	saturday := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeScheduleRepo{weekly: fullWeekHours("09:00", "17:00")},
		&fakeBlockedRepo{},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: saturday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OverrideWinsOverWeekly(t *testing.T) {
	// Переопределение включает субботу, хотя по недельному расписанию это выходной.
	saturday := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeScheduleRepo{
			weekly: fullWeekHours("09:00", "17:00"),
			override: &domain.CustomWorkingHours{
				ID:             1,
				ProfessionalID: 1,
				Date:           saturday,
				Start:          "10:00",
				End:            "12:00",
			},
		},
		&fakeBlockedRepo{},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: saturday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "10:00", resp.Slots[0].Time.String())
	assert.Equal(t, "11:30", resp.Slots[3].Time.String())
}

func TestExecute_MissingWorkingHoursFallsBackToDefaults(t *testing.T) {
	uc := newTestUseCase(
		&fakeScheduleRepo{weeklyErr: scheduleRepo.ErrWorkingHoursNotFound},
		&fakeBlockedRepo{},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: testDate})
	require.NoError(t, err)
	// По умолчанию 09:00-17:00 по будням.
	require.Len(t, resp.Slots, 16)

	sunday := time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)
	resp, err = uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlockedBoundaryTouchDoesNotBlock(t *testing.T) {
	// Блокировка 10:00-10:30 не задевает слоты 09:30 и 10:30.
	uc := newTestUseCase(
		&fakeScheduleRepo{weekly: fullWeekHours("09:00", "11:30")},
		&fakeBlockedRepo{slots: []*domain.BlockedTimeSlot{
			{ID: 1, ProfessionalID: 1, StartAt: at(testDate, "10:00"), EndAt: at(testDate, "10:30")},
		}},
		&fakeAppointmentRepo{},
	)

	resp, err := uc.Execute(context.Background(), Request{ProfessionalID: 1, Date: testDate})
	require.NoError(t, err)

	byTime := map[string]bool{}
	for _, slot := range resp.Slots {
		byTime[slot.Time.String()] = slot.Available
	}

	assert.True(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.True(t, byTime["10:30"])
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeBlockedRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), Request{ProfessionalID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{ProfessionalID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
