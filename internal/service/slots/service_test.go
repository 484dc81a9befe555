package slots

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	slotRepo "github.com/wipeandshine/scheduling-service/internal/infra/storage/slot"
	"github.com/wipeandshine/scheduling-service/internal/service/slots/models"
	"github.com/wipeandshine/scheduling-service/pkg/ptr"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

type fakeSlotRepo struct {
	nextID int64
	slots  map[int64]*domain.TimeSlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[int64]*domain.TimeSlot)}
}

func (f *fakeSlotRepo) FindByDate(_ context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	var out []*domain.TimeSlot
	for _, s := range f.slots {
		if s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) Block(_ context.Context, date time.Time, startTime, endTime types.TimeString, staffID int64, reason *string) (*domain.TimeSlot, error) {
	for _, s := range f.slots {
		if s.Date.Equal(date) && s.StartTime == startTime {
			if s.BookedBy != nil {
				return nil, slotRepo.ErrSlotTaken
			}
			s.IsBlocked = true
			s.BlockedBy = &staffID
			s.BlockReason = reason
			return s, nil
		}
	}

	f.nextID++
	s := &domain.TimeSlot{
		ID:          f.nextID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		IsBlocked:   true,
		BlockedBy:   &staffID,
		BlockReason: reason,
	}
	f.slots[s.ID] = s
	return s, nil
}

func (f *fakeSlotRepo) Unblock(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if !s.IsBlocked {
		return nil, slotRepo.ErrSlotNotBlocked
	}
	s.IsBlocked = false
	s.BlockedBy = nil
	s.BlockReason = nil
	return s, nil
}

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) GetScheduling(_ context.Context) (domain.SchedulingConfig, error) {
	return domain.DefaultSchedulingConfig(), nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeSlotRepo, audit *fakeAuditRepo) *Service {
	return NewService(repo, fakeSettingsRepo{}, audit, fakeTxManager{}, nopLogger{})
}

func TestBlock_CreatesRecordAndAudit(t *testing.T) {
	repo := newFakeSlotRepo()
	audit := &fakeAuditRepo{}
	svc := newTestService(repo, audit)

	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	reason := "техническое обслуживание"

	resp, err := svc.Block(context.Background(), &models.BlockSlotRequest{
		StaffID:   7,
		Date:      date,
		StartTime: "14:00",
		Reason:    &reason,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsBlocked)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "14:30", resp.EndTime)
	require.NotNil(t, resp.BlockReason)
	assert.Equal(t, reason, *resp.BlockReason)

	// Аудит записан вместе с блокировкой
	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, domain.AuditActionBlockTimeSlot, entry.Action)
	assert.Equal(t, domain.AuditEntityTimeSlot, entry.EntityType)
	assert.Equal(t, int64(7), entry.UserID)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, "14:00", details["startTime"])
}

func TestBlock_BookedSlotRejected(t *testing.T) {
	repo := newFakeSlotRepo()
	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	repo.nextID++
	repo.slots[1] = &domain.TimeSlot{
		ID: 1, Date: date, StartTime: "14:00", EndTime: "14:30",
		BookedBy: ptr.Ptr(int64(42)), BookingID: ptr.Ptr(int64(10)),
	}

	audit := &fakeAuditRepo{}
	svc := newTestService(repo, audit)

	_, err := svc.Block(context.Background(), &models.BlockSlotRequest{
		StaffID:   7,
		Date:      date,
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, audit.entries)
}

func TestUnblock(t *testing.T) {
	repo := newFakeSlotRepo()
	audit := &fakeAuditRepo{}
	svc := newTestService(repo, audit)

	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	blocked, err := svc.Block(context.Background(), &models.BlockSlotRequest{
		StaffID:   7,
		Date:      date,
		StartTime: "15:00",
	})
	require.NoError(t, err)

	resp, err := svc.Unblock(context.Background(), &models.UnblockSlotRequest{
		StaffID: 7,
		SlotID:  blocked.ID,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsBlocked)
	assert.Nil(t, resp.BlockedBy)

	// Две записи аудита: блокировка и разблокировка
	require.Len(t, audit.entries, 2)
	assert.Equal(t, domain.AuditActionUnblockTimeSlot, audit.entries[1].Action)

	// Повторная разблокировка
	_, err = svc.Unblock(context.Background(), &models.UnblockSlotRequest{StaffID: 7, SlotID: blocked.ID})
	assert.ErrorIs(t, err, ErrNotBlocked)

	// Несуществующий слот
	_, err = svc.Unblock(context.Background(), &models.UnblockSlotRequest{StaffID: 7, SlotID: 999})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBlock_ValidationErrors(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), &fakeAuditRepo{})
	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	longReason := make([]rune, domain.MaxBlockReasonLength+1)
	for i := range longReason {
		longReason[i] = 'x'
	}
	long := string(longReason)

	tests := []struct {
		name string
		req  *models.BlockSlotRequest
	}{
		{"zero staff", &models.BlockSlotRequest{Date: date, StartTime: "14:00"}},
		{"zero date", &models.BlockSlotRequest{StaffID: 7, StartTime: "14:00"}},
		{"missing time", &models.BlockSlotRequest{StaffID: 7, Date: date}},
		{"bad time format", &models.BlockSlotRequest{StaffID: 7, Date: date, StartTime: "2pm"}},
		{"long reason", &models.BlockSlotRequest{StaffID: 7, Date: date, StartTime: "14:00", Reason: &long}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Block(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestListByDate(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo, &fakeAuditRepo{})

	date := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	_, err := svc.Block(context.Background(), &models.BlockSlotRequest{StaffID: 7, Date: date, StartTime: "14:00"})
	require.NoError(t, err)

	resp, err := svc.ListByDate(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.True(t, resp.Slots[0].IsBlocked)

	// Пустой день
	other := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	resp, err = svc.ListByDate(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}
