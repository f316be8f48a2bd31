package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 1, 14, 30, 45, 0, time.UTC))
	assert.Equal(t, TimeString("14:30"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:00")
		require.NoError(t, err)
		assert.Equal(t, "09:00", ts.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, s := range []string{"25:00", "9:0", "12:60", "noon", ""} {
			_, err := NewTimeStringFromString(s)
			assert.Error(t, err, "expected error for %q", s)
		}
	})
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeString("bad").Minutes()
	assert.Error(t, err)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.False(t, TimeString("17:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))

	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		ts, err := TimeString("09:00").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("clamped to end of day", func(t *testing.T) {
		ts, err := TimeString("23:45").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("23:59"), ts)
	})

	t.Run("negative clamped to midnight", func(t *testing.T) {
		ts, err := TimeString("00:10").AddMinutes(-30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("00:00"), ts)
	})
}

func TestTimeString_Format12Hour(t *testing.T) {
	assert.Equal(t, "9:00 AM", TimeString("09:00").Format12Hour())
	assert.Equal(t, "12:00 PM", TimeString("12:00").Format12Hour())
	assert.Equal(t, "4:30 PM", TimeString("16:30").Format12Hour())
	assert.Equal(t, "12:00 AM", TimeString("00:00").Format12Hour())
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("10:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), at)

	_, err = TimeString("bad").OnDate(date)
	assert.Error(t, err)
}
