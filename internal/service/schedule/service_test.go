package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	blockedRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/blocked"
	scheduleRepo "github.com/m04kA/BMP-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/BMP-ScheduleService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	weekly      *domain.WorkingHours
	custom      []*domain.CustomWorkingHours
	saved       *domain.WorkingHours
	replaced    []*domain.CustomWorkingHours
	replacedFor int64
}

func (f *fakeScheduleRepo) GetWorkingHours(_ context.Context, _ int64) (*domain.WorkingHours, error) {
	if f.weekly == nil {
		return nil, scheduleRepo.ErrWorkingHoursNotFound
	}
	return f.weekly, nil
}

func (f *fakeScheduleRepo) SaveWorkingHours(_ context.Context, wh *domain.WorkingHours) error {
	f.saved = wh
	return nil
}

func (f *fakeScheduleRepo) GetCustomWorkingHours(_ context.Context, _ int64) ([]*domain.CustomWorkingHours, error) {
	return f.custom, nil
}

func (f *fakeScheduleRepo) ReplaceCustomWorkingHours(_ context.Context, professionalID int64, entries []*domain.CustomWorkingHours) error {
	f.replacedFor = professionalID
	f.replaced = entries
	return nil
}

type fakeBlockedRepo struct {
	slots   []*domain.BlockedTimeSlot
	deleted []int64
	updated *domain.BlockedTimeSlot
}

func (f *fakeBlockedRepo) Create(_ context.Context, slot *domain.BlockedTimeSlot) (*domain.BlockedTimeSlot, error) {
	created := *slot
	created.ID = 11
	return &created, nil
}

func (f *fakeBlockedRepo) GetByID(_ context.Context, id int64) (*domain.BlockedTimeSlot, error) {
	for _, s := range f.slots {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, blockedRepo.ErrBlockedSlotNotFound
}

func (f *fakeBlockedRepo) GetByProfessional(_ context.Context, _ int64) ([]*domain.BlockedTimeSlot, error) {
	return f.slots, nil
}

func (f *fakeBlockedRepo) Update(_ context.Context, slot *domain.BlockedTimeSlot) error {
	f.updated = slot
	return nil
}

func (f *fakeBlockedRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(schedule *fakeScheduleRepo, blocked *fakeBlockedRepo) *Service {
	return NewService(schedule, blocked, fakeTxManager{}, nopLogger{})
}

func validWorkingHoursRequest() *models.UpdateWorkingHoursRequest {
	day := models.DayHoursDTO{Start: "09:00", End: "17:00", Enabled: true}
	off := models.DayHoursDTO{Enabled: false}

	return &models.UpdateWorkingHoursRequest{
		UserID:         1,
		ProfessionalID: 1,
		Monday:         day,
		Tuesday:        day,
		Wednesday:      day,
		Thursday:       day,
		Friday:         day,
		Saturday:       off,
		Sunday:         off,
	}
}

func TestGetSchedule_DefaultsWhenNotConfigured(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeBlockedRepo{})

	resp, err := svc.GetSchedule(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.WorkingHours.Monday.Start)
	assert.Equal(t, "17:00", resp.WorkingHours.Monday.End)
	assert.True(t, resp.WorkingHours.Friday.Enabled)
	assert.False(t, resp.WorkingHours.Saturday.Enabled)
	assert.False(t, resp.WorkingHours.Sunday.Enabled)
	assert.Empty(t, resp.CustomHours)
	assert.Empty(t, resp.BlockedSlots)
}

func TestSaveWorkingHours_OwnerOnly(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo, &fakeBlockedRepo{})

	req := validWorkingHoursRequest()
	req.UserID = 2

	_, err := svc.SaveWorkingHours(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.saved)
}

func TestSaveWorkingHours_RejectsInvertedDay(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeBlockedRepo{})

	req := validWorkingHoursRequest()
	req.Wednesday = models.DayHoursDTO{Start: "17:00", End: "09:00", Enabled: true}

	_, err := svc.SaveWorkingHours(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveWorkingHours_DisabledDaySkipsValidation(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo, &fakeBlockedRepo{})

	// У выключенного дня границы могут быть пустыми.
	resp, err := svc.SaveWorkingHours(context.Background(), validWorkingHoursRequest())
	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.False(t, resp.Saturday.Enabled)
}

func TestReplaceCustomHours_ReplacesAllEntries(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo, &fakeBlockedRepo{})

	resp, err := svc.ReplaceCustomHours(context.Background(), &models.UpdateCustomHoursRequest{
		UserID:         1,
		ProfessionalID: 1,
		Entries: []models.CustomHoursEntry{
			{Date: "2026-09-05", Start: "10:00", End: "14:00"},
			{Date: "2026-09-06", Start: "12:00", End: "16:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.replacedFor)
	require.Len(t, repo.replaced, 2)
	assert.Len(t, resp, 2)
	assert.Equal(t, "2026-09-05", resp[0].Date)
}

func TestReplaceCustomHours_RejectsDuplicateDates(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeBlockedRepo{})

	_, err := svc.ReplaceCustomHours(context.Background(), &models.UpdateCustomHoursRequest{
		UserID:         1,
		ProfessionalID: 1,
		Entries: []models.CustomHoursEntry{
			{Date: "2026-09-05", Start: "10:00", End: "14:00"},
			{Date: "2026-09-05", Start: "12:00", End: "16:00"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBlockedSlotLifecycle(t *testing.T) {
	start := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC)
	existing := &domain.BlockedTimeSlot{ID: 11, ProfessionalID: 1, Title: "Lunch", StartAt: start, EndAt: start.Add(time.Hour)}

	repo := &fakeBlockedRepo{slots: []*domain.BlockedTimeSlot{existing}}
	svc := newTestService(&fakeScheduleRepo{}, repo)

	created, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		UserID:         1,
		ProfessionalID: 1,
		Title:          "Lunch",
		StartAt:        start,
		EndAt:          start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	updated, err := svc.UpdateBlockedSlot(context.Background(), 11, &models.UpdateBlockedSlotRequest{
		UserID:  1,
		Title:   "Late lunch",
		StartAt: start.Add(time.Hour),
		EndAt:   start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Late lunch", updated.Title)
	require.NotNil(t, repo.updated)

	err = svc.DeleteBlockedSlot(context.Background(), 11, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, repo.deleted)
}

func TestBlockedSlot_OwnershipEnforced(t *testing.T) {
	start := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC)
	repo := &fakeBlockedRepo{slots: []*domain.BlockedTimeSlot{
		{ID: 11, ProfessionalID: 1, StartAt: start, EndAt: start.Add(time.Hour)},
	}}
	svc := newTestService(&fakeScheduleRepo{}, repo)

	_, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		UserID:         2,
		ProfessionalID: 1,
		StartAt:        start,
		EndAt:          start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeleteBlockedSlot(context.Background(), 11, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeleteBlockedSlot(context.Background(), 404, 1)
	assert.ErrorIs(t, err, ErrBlockedSlotNotFound)
}

func TestCreateBlockedSlot_InvalidInterval(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, &fakeBlockedRepo{})

	start := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC)
	_, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		UserID:         1,
		ProfessionalID: 1,
		StartAt:        start,
		EndAt:          start,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
