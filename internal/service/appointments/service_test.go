package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/appointment"
	"github.com/m04kA/BMP-ScheduleService/internal/service/appointments/models"
	"github.com/m04kA/BMP-ScheduleService/pkg/ptr"
)

type statusUpdate struct {
	id     int64
	status domain.AppointmentStatus
	reason *string
}

type rescheduleCall struct {
	id       int64
	newStart time.Time
	newEnd   time.Time
}

type fakeAppointmentRepo struct {
	appointment    *domain.Appointment
	updateErr      error
	updates        []statusUpdate
	reschedules    []rescheduleCall
	byClient       []*domain.Appointment
	byProfessional []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByProfessionalWithFilter(_ context.Context, _ domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.byProfessional, nil
}

func (f *fakeAppointmentRepo) GetByClientID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return f.byClient, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus, reason *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, statusUpdate{id: id, status: status, reason: reason})
	return nil
}

func (f *fakeAppointmentRepo) Reschedule(_ context.Context, id int64, newStart, newEnd time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.reschedules = append(f.reschedules, rescheduleCall{id: id, newStart: newStart, newEnd: newEnd})
	return nil
}

type fakeNotifyClient struct {
	calls []int64
	err   error
}

func (f *fakeNotifyClient) Notify(_ context.Context, userID int64, _, _ string, _ map[string]string) error {
	f.calls = append(f.calls, userID)
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	clientID       = int64(10)
	professionalID = int64(1)
)

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:             7,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		ServiceID:      5,
		Date:           start.Truncate(24 * time.Hour),
		StartAt:        start,
		EndAt:          start.Add(30 * time.Minute),
		Status:         status,
		ServiceName:    "Haircut",
	}
}

func newTestService(repo *fakeAppointmentRepo, notify *fakeNotifyClient) *Service {
	return NewService(repo, notify, nopLogger{})
}

func TestApprove_MovesAwaitingStatusesToScheduled(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusRequested, domain.StatusPending, domain.StatusPrebooked} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeAppointmentRepo{appointment: testAppointment(status)}
			notify := &fakeNotifyClient{}
			svc := newTestService(repo, notify)

			err := svc.Approve(context.Background(), 7, professionalID)
			require.NoError(t, err)

			require.Len(t, repo.updates, 1)
			assert.Equal(t, domain.StatusScheduled, repo.updates[0].status)
			require.NotNil(t, repo.updates[0].reason)
			assert.Equal(t, domain.ReasonApprovedByProfessional, *repo.updates[0].reason)

			// Клиент уведомляется после успешного перехода.
			assert.Equal(t, []int64{clientID}, notify.calls)
		})
	}
}

func TestApprove_RejectsNonAwaitingStatuses(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusScheduled, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeAppointmentRepo{appointment: testAppointment(status)}
			svc := newTestService(repo, &fakeNotifyClient{})

			err := svc.Approve(context.Background(), 7, professionalID)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, repo.updates)
		})
	}
}

func TestApprove_OnlyProfessional(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusRequested)}
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Approve(context.Background(), 7, clientID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_DefaultReasonDependsOnActor(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		wantReason string
		wantNotify int64
	}{
		{"client cancels", clientID, domain.ReasonCancelledByClient, professionalID},
		{"professional cancels", professionalID, domain.ReasonCancelledByProfessional, clientID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
			notify := &fakeNotifyClient{}
			svc := newTestService(repo, notify)

			err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: tt.userID})
			require.NoError(t, err)

			require.Len(t, repo.updates, 1)
			assert.Equal(t, domain.StatusCancelled, repo.updates[0].status)
			assert.Equal(t, tt.wantReason, *repo.updates[0].reason)

			// Уведомление уходит второй стороне записи.
			assert.Equal(t, []int64{tt.wantNotify}, notify.calls)
		})
	}
}

func TestCancel_ExplicitReasonKept(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusRequested)}
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{
		UserID: clientID,
		Reason: ptr.Ptr("travel plans changed"),
	})
	require.NoError(t, err)

	require.Len(t, repo.updates, 1)
	assert.Equal(t, "travel plans changed", *repo.updates[0].reason)
}

func TestCancel_TerminalStatusesRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeAppointmentRepo{appointment: testAppointment(status)}
			svc := newTestService(repo, &fakeNotifyClient{})

			err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: clientID})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := newTestService(repo, &fakeNotifyClient{})

	err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReschedule_MovesAppointmentAndNotifiesClient(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	newStart := time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
	err := svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:   professionalID,
		NewStart: newStart,
		NewEnd:   newStart.Add(30 * time.Minute),
	})
	require.NoError(t, err)

	require.Len(t, repo.reschedules, 1)
	assert.Equal(t, newStart, repo.reschedules[0].newStart)
	assert.Equal(t, []int64{clientID}, notify.calls)
}

func TestReschedule_ClientDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := newTestService(repo, &fakeNotifyClient{})

	newStart := time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
	err := svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:   clientID,
		NewStart: newStart,
		NewEnd:   newStart.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReschedule_InvalidRange(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := newTestService(repo, &fakeNotifyClient{})

	newStart := time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
	err := svc.Reschedule(context.Background(), 7, &models.RescheduleAppointmentRequest{
		UserID:   professionalID,
		NewStart: newStart,
		NewEnd:   newStart,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.reschedules)
}

func TestComplete_OnlyScheduled(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	err := svc.Complete(context.Background(), 7, professionalID)
	require.NoError(t, err)

	require.Len(t, repo.updates, 1)
	assert.Equal(t, domain.StatusCompleted, repo.updates[0].status)
	assert.Equal(t, []int64{clientID}, notify.calls)

	for _, status := range []domain.AppointmentStatus{domain.StatusRequested, domain.StatusPending, domain.StatusCancelled, domain.StatusCompleted} {
		repo := &fakeAppointmentRepo{appointment: testAppointment(status)}
		svc := newTestService(repo, &fakeNotifyClient{})

		err := svc.Complete(context.Background(), 7, professionalID)
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestUpdateFailureSkipsNotification(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appointment: testAppointment(domain.StatusRequested),
		updateErr:   errors.New("db down"),
	}
	notify := &fakeNotifyClient{}
	svc := newTestService(repo, notify)

	err := svc.Approve(context.Background(), 7, professionalID)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, notify.calls)
}

func TestNotifyFailureDoesNotFailTransition(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusRequested)}
	notify := &fakeNotifyClient{err: errors.New("delivery failed")}
	svc := newTestService(repo, notify)

	err := svc.Approve(context.Background(), 7, professionalID)
	assert.NoError(t, err)
	require.Len(t, repo.updates, 1)
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment(domain.StatusScheduled)}
	svc := newTestService(repo, &fakeNotifyClient{})

	resp, err := svc.GetByID(context.Background(), 7, clientID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)

	_, err = svc.GetByID(context.Background(), 7, professionalID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 7, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 404, clientID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetProfessionalAppointments_OwnerOnly(t *testing.T) {
	repo := &fakeAppointmentRepo{byProfessional: []*domain.Appointment{testAppointment(domain.StatusScheduled)}}
	svc := newTestService(repo, &fakeNotifyClient{})

	resp, err := svc.GetProfessionalAppointments(context.Background(), &models.GetProfessionalAppointmentsRequest{
		UserID:         professionalID,
		ProfessionalID: professionalID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetProfessionalAppointments(context.Background(), &models.GetProfessionalAppointmentsRequest{
		UserID:         clientID,
		ProfessionalID: professionalID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetClientAppointments_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, &fakeNotifyClient{})

	_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		ClientID: clientID,
		Status:   ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
