package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_StatusPredicates(t *testing.T) {
	tests := []struct {
		status           AppointmentStatus
		terminal         bool
		active           bool
		awaitingApproval bool
		canComplete      bool
	}{
		{StatusRequested, false, true, true, false},
		{StatusPending, false, true, true, false},
		{StatusPrebooked, false, true, true, false},
		{StatusScheduled, false, true, false, true},
		{StatusCompleted, true, true, false, false},
		{StatusCancelled, true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			apt := &Appointment{Status: tt.status}

			assert.Equal(t, tt.terminal, apt.IsTerminal())
			assert.Equal(t, tt.active, apt.IsActive())
			assert.Equal(t, tt.awaitingApproval, apt.IsAwaitingApproval())
			assert.Equal(t, tt.awaitingApproval, apt.CanBeApproved())
			assert.Equal(t, tt.canComplete, apt.CanBeCompleted())

			// Отмена и перенос допустимы из любого нетерминального статуса
			assert.Equal(t, !tt.terminal, apt.CanBeCancelled())
			assert.Equal(t, !tt.terminal, apt.CanBeRescheduled())
		})
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		for _, s := range []string{"scheduled", "SCHEDULED", "Scheduled", "  scheduled  "} {
			status, err := ParseAppointmentStatus(s)
			require.NoError(t, err, "input %q", s)
			assert.Equal(t, StatusScheduled, status)
		}
	})

	t.Run("all known statuses", func(t *testing.T) {
		for _, valid := range AllStatuses {
			status, err := ParseAppointmentStatus(string(valid))
			require.NoError(t, err)
			assert.Equal(t, valid, status)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := ParseAppointmentStatus("confirmed")
		assert.ErrorIs(t, err, ErrUnknownStatus)

		_, err = ParseAppointmentStatus("")
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})
}
