package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipeandshine/scheduling-service/pkg/types"
)

func testConfig() SchedulingConfig {
	return SchedulingConfig{
		BusinessHoursStart:   "09:00",
		BusinessHoursEnd:     "21:00",
		SaturdayCutoffHour:   18,
		MinBookingHoursAhead: 6,
		SlotDurationMinutes:  30,
		SundayBookings:       false,
	}
}

// Понедельник 2024-01-15
func monday(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
}

func TestGenerateSlots_MondayScenario(t *testing.T) {
	// 10:00 + 6h = 16:00, уже выровнено по сетке слотов
	now := monday(10, 0)
	date := monday(0, 0)

	slots, err := GenerateSlots(date, testConfig(), now)
	require.NoError(t, err)

	require.Len(t, slots, 10)
	assert.Equal(t, types.TimeString("16:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:30"), slots[0].EndTime)
	assert.Equal(t, types.TimeString("20:30"), slots[len(slots)-1].StartTime)
	assert.Equal(t, types.TimeString("21:00"), slots[len(slots)-1].EndTime)
}

func TestGenerateSlots_SundayDisabled(t *testing.T) {
	sunday := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	now := monday(10, 0)

	slots, err := GenerateSlots(sunday, testConfig(), now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_SundayEnabled(t *testing.T) {
	sunday := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	now := monday(10, 0)

	cfg := testConfig()
	cfg.SundayBookings = true

	slots, err := GenerateSlots(sunday, cfg, now)
	require.NoError(t, err)
	// Полный рабочий день: (21:00-09:00)/30min = 24 слота
	assert.Len(t, slots, 24)
}

func TestGenerateSlots_SaturdayCutoff(t *testing.T) {
	saturday := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		wantEmpty bool
	}{
		{
			name:      "после отсечки - пусто",
			now:       time.Date(2024, 1, 20, 19, 0, 0, 0, time.UTC),
			wantEmpty: true,
		},
		{
			name:      "ровно в час отсечки без минут - ещё не отсечка",
			now:       time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC),
			wantEmpty: false,
		},
		{
			name:      "час отсечки с ненулевыми минутами - уже отсечка",
			now:       time.Date(2024, 1, 20, 18, 1, 0, 0, time.UTC),
			wantEmpty: true,
		},
		{
			name:      "будущая суббота - текущее время не учитывается",
			now:       time.Date(2024, 1, 17, 19, 30, 0, 0, time.UTC),
			wantEmpty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(saturday, testConfig(), tt.now)
			require.NoError(t, err)
			if tt.wantEmpty {
				assert.Empty(t, slots)
			} else {
				assert.NotEmpty(t, slots)
			}
		})
	}
}

func TestGenerateSlots_LeadTimeRounding(t *testing.T) {
	date := monday(0, 0)

	tests := []struct {
		name      string
		now       time.Time
		wantFirst types.TimeString
	}{
		{
			name:      "минуты округляются вверх до кратного слоту",
			now:       monday(10, 7), // 16:07 -> 16:30
			wantFirst: "16:30",
		},
		{
			name:      "переполнение минут переносится в час",
			now:       monday(10, 45), // 16:45 -> 17:00
			wantFirst: "17:00",
		},
		{
			name:      "раннее утро - действует начало рабочего дня",
			now:       monday(1, 0), // 07:00 раньше 09:00
			wantFirst: "09:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(date, testConfig(), tt.now)
			require.NoError(t, err)
			require.NotEmpty(t, slots)
			assert.Equal(t, tt.wantFirst, slots[0].StartTime)
		})
	}
}

func TestGenerateSlots_FutureDateIgnoresLeadTime(t *testing.T) {
	// На завтра лид-тайм не влияет - начинаем с открытия
	now := monday(20, 0)
	tomorrow := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(tomorrow, testConfig(), now)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Len(t, slots, 24)
}

func TestGenerateSlots_StraddlingSlotDropped(t *testing.T) {
	// Рабочий день до 20:45: слот 20:30-21:00 вылез бы за закрытие
	cfg := testConfig()
	cfg.BusinessHoursEnd = "20:45"

	now := monday(1, 0)
	slots, err := GenerateSlots(monday(0, 0), cfg, now)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("20:30"), slots[len(slots)-1].EndTime)
}

func TestGenerateSlots_SequenceProperties(t *testing.T) {
	now := monday(10, 7)
	slots, err := GenerateSlots(monday(0, 0), testConfig(), now)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	end, err := types.NewTimeStringFromString(testConfig().BusinessHoursEnd)
	require.NoError(t, err)

	for i, slot := range slots {
		// Длительность каждого слота равна slotDuration
		wantEnd, err := slot.StartTime.AddMinutes(testConfig().SlotDurationMinutes)
		require.NoError(t, err)
		assert.Equal(t, wantEnd, slot.EndTime)

		// Конец не выходит за рабочие часы
		assert.False(t, slot.EndTime.IsAfter(end))

		// Слоты идут подряд без дыр и пересечений
		if i > 0 {
			assert.Equal(t, slots[i-1].EndTime, slot.StartTime)
		}
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	now := monday(10, 7)
	date := monday(0, 0)

	first, err := GenerateSlots(date, testConfig(), now)
	require.NoError(t, err)
	second, err := GenerateSlots(date, testConfig(), now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_InvalidConfig(t *testing.T) {
	now := monday(10, 0)
	date := monday(0, 0)

	tests := []struct {
		name   string
		mutate func(*SchedulingConfig)
	}{
		{"нечисловой час открытия", func(c *SchedulingConfig) { c.BusinessHoursStart = "ab:00" }},
		{"обрезанное время закрытия", func(c *SchedulingConfig) { c.BusinessHoursEnd = "21" }},
		{"час вне диапазона", func(c *SchedulingConfig) { c.BusinessHoursStart = "25:00" }},
		{"нулевая длительность слота", func(c *SchedulingConfig) { c.SlotDurationMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			_, err := GenerateSlots(date, cfg, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestIsValidBookingDate(t *testing.T) {
	now := monday(10, 0)

	assert.False(t, IsValidBookingDate(monday(0, 0).AddDate(0, 0, -1), now, false))
	assert.True(t, IsValidBookingDate(monday(0, 0), now, false))

	sunday := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsValidBookingDate(sunday, now, false))
	assert.True(t, IsValidBookingDate(sunday, now, true))
}

func TestIsAtLeastMinHoursAway(t *testing.T) {
	now := monday(10, 0)
	date := monday(0, 0)

	ok, err := IsAtLeastMinHoursAway(date, "16:00", now, 6)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsAtLeastMinHoursAway(date, "15:59", now, 6)
	require.NoError(t, err)
	assert.False(t, ok)
}
