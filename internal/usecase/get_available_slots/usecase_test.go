package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/ptr"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

type fakeSlotRepo struct {
	records []*domain.TimeSlot
	err     error
}

func (f *fakeSlotRepo) FindByDate(_ context.Context, _ time.Time) ([]*domain.TimeSlot, error) {
	return f.records, f.err
}

type fakeSettingsRepo struct {
	cfg domain.SchedulingConfig
	err error
}

func (f *fakeSettingsRepo) GetScheduling(_ context.Context) (domain.SchedulingConfig, error) {
	return f.cfg, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(slots *fakeSlotRepo, settings *fakeSettingsRepo, now time.Time) *UseCase {
	uc := NewUseCase(slots, settings, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func mondayCfg() domain.SchedulingConfig {
	return domain.SchedulingConfig{
		BusinessHoursStart:   "09:00",
		BusinessHoursEnd:     "21:00",
		SaturdayCutoffHour:   18,
		MinBookingHoursAhead: 6,
		SlotDurationMinutes:  30,
		SundayBookings:       false,
	}
}

func TestExecute_FiltersBookedAndBlocked(t *testing.T) {
	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC) // вторник
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	slots := &fakeSlotRepo{records: []*domain.TimeSlot{
		{Date: date, StartTime: "09:00", EndTime: "09:30", BookedBy: ptr.Ptr(int64(7)), BookingID: ptr.Ptr(int64(100))},
		{Date: date, StartTime: "10:00", EndTime: "10:30", IsBlocked: true, BlockedBy: ptr.Ptr(int64(1))},
		// Запись без брони и блокировки - логически свободный слот
		{Date: date, StartTime: "11:00", EndTime: "11:30"},
	}}

	uc := newTestUseCase(slots, &fakeSettingsRepo{cfg: mondayCfg()}, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: date})
	require.NoError(t, err)

	starts := make(map[types.TimeString]bool)
	for _, s := range resp.Slots {
		starts[s.StartTime] = true
	}

	assert.False(t, starts["09:00"], "забронированный слот должен быть отфильтрован")
	assert.False(t, starts["10:00"], "заблокированный слот должен быть отфильтрован")
	assert.True(t, starts["11:00"], "запись без брони и блокировки не занимает слот")

	// Полный день 24 слота минус два занятых
	assert.Len(t, resp.Slots, 22)
}

func TestExecute_PreservesChronologicalOrder(t *testing.T) {
	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	slots := &fakeSlotRepo{records: []*domain.TimeSlot{
		{Date: date, StartTime: "12:00", EndTime: "12:30", IsBlocked: true},
	}}

	uc := newTestUseCase(slots, &fakeSettingsRepo{cfg: mondayCfg()}, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: date})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartTime.IsBefore(resp.Slots[i].StartTime))
	}
}

func TestExecute_ClaimThenReleaseRoundTrip(t *testing.T) {
	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	booked := &domain.TimeSlot{Date: date, StartTime: "09:00", EndTime: "09:30",
		BookedBy: ptr.Ptr(int64(7)), BookingID: ptr.Ptr(int64(100))}
	slots := &fakeSlotRepo{records: []*domain.TimeSlot{booked}}

	uc := newTestUseCase(slots, &fakeSettingsRepo{cfg: mondayCfg()}, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: date})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 23)

	// После освобождения слот снова в выдаче
	booked.BookedBy = nil
	booked.BookingID = nil

	resp, err = uc.Execute(context.Background(), &Request{UserID: 1, Date: date})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 24)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_SundayDisabledYieldsEmpty(t *testing.T) {
	sunday := time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeSlotRepo{}, &fakeSettingsRepo{cfg: mondayCfg()}, now)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateRejected(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	past := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeSlotRepo{}, &fakeSettingsRepo{cfg: mondayCfg()}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: past})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_MalformedConfigSurfaced(t *testing.T) {
	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	cfg := mondayCfg()
	cfg.BusinessHoursStart = "zz:00"

	uc := newTestUseCase(&fakeSlotRepo{}, &fakeSettingsRepo{cfg: cfg}, now)

	_, err := uc.Execute(context.Background(), &Request{UserID: 1, Date: date})
	assert.ErrorIs(t, err, ErrInvalidSchedulingConfig)
}
