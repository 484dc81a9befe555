package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"", "9:30:00", "25:00", "12:60", "noon", "12.30"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2024, 1, 15, 7, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}

func TestClock(t *testing.T) {
	hour, minute, err := TimeString("16:45").Clock()
	require.NoError(t, err)
	assert.Equal(t, 16, hour)
	assert.Equal(t, 45, minute)

	_, _, err = TimeString("bad").Clock()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("21:00").IsAfter("20:59"))
	assert.False(t, TimeString("21:00").IsAfter("21:00"))
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestValidateAndIsZero(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.Error(t, TimeString("24:00").Validate())
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("10:00").IsZero())
}
