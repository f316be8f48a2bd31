package get_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
)

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

var (
	from = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
)

func ts(day, hour, minute int) time.Time {
	return time.Date(2026, time.September, day, hour, minute, 0, 0, time.UTC)
}

func TestExecute_MergesAndSortsEvents(t *testing.T) {
	uc := NewUseCase(
		&fakeBlockedRepo{slots: []*domain.BlockedTimeSlot{
			{ID: 7, ProfessionalID: 1, Title: "Lunch", StartAt: ts(2, 13, 0), EndAt: ts(2, 14, 0)},
		}},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			{ID: 1, ProfessionalID: 1, ServiceName: "Haircut", ClientName: "Anna", StartAt: ts(3, 10, 0), EndAt: ts(3, 10, 30), Status: domain.StatusScheduled},
			{ID: 2, ProfessionalID: 1, ServiceName: "Manicure", StartAt: ts(1, 9, 0), EndAt: ts(1, 9, 30), Status: domain.StatusPending},
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), Request{RequesterID: 1, ProfessionalID: 1, From: from, To: to})
	require.NoError(t, err)
	require.Len(t, resp.Events, 3)

	assert.Equal(t, int64(2), resp.Events[0].ID)
	assert.Equal(t, int64(7), resp.Events[1].ID)
	assert.Equal(t, int64(1), resp.Events[2].ID)

	assert.Equal(t, domain.EventTypeBlocked, resp.Events[1].Type)
	assert.Equal(t, domain.EventStatusPending, resp.Events[0].Status)
	assert.Equal(t, domain.EventStatusScheduled, resp.Events[2].Status)
	assert.Equal(t, "[PENDING] Manicure", resp.Events[0].Title)
	assert.Equal(t, "Haircut - Anna", resp.Events[2].Title)
}

func TestExecute_CancelledAppointmentsExcluded(t *testing.T) {
	uc := NewUseCase(
		&fakeBlockedRepo{},
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			{ID: 1, ProfessionalID: 1, ServiceName: "Haircut", StartAt: ts(1, 10, 0), EndAt: ts(1, 10, 30), Status: domain.StatusCancelled},
		}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), Request{RequesterID: 1, ProfessionalID: 1, From: from, To: to})
	require.NoError(t, err)
	assert.Empty(t, resp.Events)
}

func TestAppointmentTitle_PendingPrefixIdempotent(t *testing.T) {
	apt := &domain.Appointment{ServiceName: "[PENDING] Haircut", Status: domain.StatusRequested}

	first := appointmentTitle(apt)
	assert.Equal(t, "[PENDING] Haircut", first)

	apt.ServiceName = first
	assert.Equal(t, first, appointmentTitle(apt))
}

func TestAppointmentTitle_PrefixStrippedAfterApproval(t *testing.T) {
	apt := &domain.Appointment{ServiceName: "[PENDING] Haircut", Status: domain.StatusScheduled}
	assert.Equal(t, "Haircut", appointmentTitle(apt))
}

func TestExecute_AccessDenied(t *testing.T) {
	uc := NewUseCase(&fakeBlockedRepo{}, &fakeAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{RequesterID: 2, ProfessionalID: 1, From: from, To: to})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_RangeValidation(t *testing.T) {
	uc := NewUseCase(&fakeBlockedRepo{}, &fakeAppointmentRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{RequesterID: 1, ProfessionalID: 1, From: to, To: from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	tooFar := from.AddDate(0, 0, domain.MaxCalendarRangeDays+1)
	_, err = uc.Execute(context.Background(), Request{RequesterID: 1, ProfessionalID: 1, From: from, To: tooFar})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
