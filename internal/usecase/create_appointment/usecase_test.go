package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/BMP-ScheduleService/pkg/types"
)

type fakeAppointmentRepo struct {
	existing  []*domain.Appointment
	createErr error
	created   *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *apt
	created.ID = 42
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByProfessionalWithFilter(_ context.Context, _ domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeScheduleRepo struct {
	weekly   *domain.WorkingHours
	override *domain.CustomWorkingHours
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64) (*domain.WorkingHours, error) {
	if f.weekly == nil {
		return nil, scheduleRepo.ErrWorkingHoursNotFound
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

type fakeNotifyClient struct {
	calls []int64
	err   error
}

func (f *fakeNotifyClient) Notify(_ context.Context, userID int64, _, _ string, _ map[string]string) error {
	f.calls = append(f.calls, userID)
	return f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вторник, рабочий день по расписанию по умолчанию.
var testDate = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		ClientID:         10,
		ProfessionalID:   1,
		ServiceID:        5,
		Date:             testDate,
		StartTime:        "10:00",
		ClientName:       "Anna",
		ProfessionalName: "Maria",
		ServiceName:      "Haircut",
	}
}

func newTestUseCase(apts *fakeAppointmentRepo, schedule *fakeScheduleRepo, blocked *fakeBlockedRepo, notify *fakeNotifyClient) *UseCase {
	uc := NewUseCase(apts, schedule, blocked, notify, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{now: testDate.Add(-24 * time.Hour)}
	return uc
}

func TestExecute_CreatesRequestedAppointment(t *testing.T) {
	apts := &fakeAppointmentRepo{}
	notify := &fakeNotifyClient{}
	uc := newTestUseCase(apts, &fakeScheduleRepo{}, &fakeBlockedRepo{}, notify)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusRequested), resp.Status)
	assert.Equal(t, testDate.Add(10*time.Hour), resp.StartAt)
	assert.Equal(t, testDate.Add(10*time.Hour+30*time.Minute), resp.EndAt)

	// Уведомление уходит профессионалу уже после сохранения записи.
	require.NotNil(t, apts.created)
	assert.Equal(t, []int64{1}, notify.calls)
}

func TestExecute_SlotTaken(t *testing.T) {
	apts := &fakeAppointmentRepo{existing: []*domain.Appointment{
		{ID: 1, ProfessionalID: 1, StartAt: testDate.Add(10 * time.Hour), Status: domain.StatusScheduled},
	}}
	notify := &fakeNotifyClient{}
	uc := newTestUseCase(apts, &fakeScheduleRepo{}, &fakeBlockedRepo{}, notify)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, notify.calls)
}

func TestExecute_SlotOverlapsBlockedInterval(t *testing.T) {
	blocked := &fakeBlockedRepo{slots: []*domain.BlockedTimeSlot{
		{ID: 1, ProfessionalID: 1, StartAt: testDate.Add(10 * time.Hour), EndAt: testDate.Add(11 * time.Hour)},
	}}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, blocked, &fakeNotifyClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_DayOff(t *testing.T) {
	// Воскресенье выключено в расписании по умолчанию.
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeBlockedRepo{}, &fakeNotifyClient{})

	req := validRequest()
	req.Date = time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDayOff)
}

func TestExecute_OverrideEnablesDayOff(t *testing.T) {
	saturday := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	schedule := &fakeScheduleRepo{
		override: &domain.CustomWorkingHours{
			ID:             1,
			ProfessionalID: 1,
			Date:           saturday,
			Start:          "10:00",
			End:            "14:00",
		},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, schedule, &fakeBlockedRepo{}, &fakeNotifyClient{})

	req := validRequest()
	req.Date = saturday

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRequested), resp.Status)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeBlockedRepo{}, &fakeNotifyClient{})

	req := validRequest()
	req.StartTime = types.TimeString("08:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeBlockedRepo{}, &fakeNotifyClient{})
	uc.timeProvider = fixedTimeProvider{now: testDate.Add(48 * time.Hour)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_NotifyFailureDoesNotFailRequest(t *testing.T) {
	notify := &fakeNotifyClient{err: errors.New("delivery failed")}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeBlockedRepo{}, notify)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Len(t, notify.calls, 1)
}

func TestExecute_CreateFailureSkipsNotification(t *testing.T) {
	apts := &fakeAppointmentRepo{createErr: errors.New("db down")}
	notify := &fakeNotifyClient{}
	uc := newTestUseCase(apts, &fakeScheduleRepo{}, &fakeBlockedRepo{}, notify)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, notify.calls)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, &fakeBlockedRepo{}, &fakeNotifyClient{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero client id", func(req *Request) { req.ClientID = 0 }},
		{"zero professional id", func(req *Request) { req.ProfessionalID = 0 }},
		{"self booking", func(req *Request) { req.ClientID = req.ProfessionalID }},
		{"unaligned start time", func(req *Request) { req.StartTime = "10:15" }},
		{"bad time format", func(req *Request) { req.StartTime = "25:00" }},
		{"missing date", func(req *Request) { req.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
