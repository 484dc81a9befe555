package config

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/internal/service/config/models"
	"github.com/wipeandshine/scheduling-service/pkg/ptr"
)

type fakeSettingsRepo struct {
	cfg      domain.SchedulingConfig
	upserted map[string]json.RawMessage
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		cfg:      domain.DefaultSchedulingConfig(),
		upserted: make(map[string]json.RawMessage),
	}
}

func (f *fakeSettingsRepo) GetScheduling(_ context.Context) (domain.SchedulingConfig, error) {
	return f.cfg, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, key string, value json.RawMessage, _ string, _ *int64) error {
	f.upserted[key] = value
	return nil
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

func TestGetScheduling_Defaults(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), &fakeAuditRepo{}, fakeTxManager{}, nopLogger{})

	resp, err := svc.GetScheduling(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.BusinessHours.Start)
	assert.Equal(t, "21:00", resp.BusinessHours.End)
	assert.Equal(t, 18, resp.SaturdayCutoffHour)
	assert.Equal(t, 6, resp.MinBookingHoursAhead)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.False(t, resp.SundayBookings)
}

func TestUpdateScheduling_PartialUpdate(t *testing.T) {
	settings := newFakeSettingsRepo()
	audit := &fakeAuditRepo{}
	svc := NewService(settings, audit, fakeTxManager{}, nopLogger{})

	resp, err := svc.UpdateScheduling(context.Background(), &models.UpdateSchedulingConfigRequest{
		StaffID:             7,
		SlotDurationMinutes: ptr.Ptr(60),
		SundayBookings:      ptr.Ptr(true),
	})
	require.NoError(t, err)

	// Изменённые поля обновлены, остальные сохранили текущее значение
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.True(t, resp.SundayBookings)
	assert.Equal(t, "09:00", resp.BusinessHours.Start)
	assert.Equal(t, 18, resp.SaturdayCutoffHour)

	// В хранилище ушли только изменённые ключи
	assert.Len(t, settings.upserted, 2)
	assert.Contains(t, settings.upserted, domain.SettingSlotDuration)
	assert.Contains(t, settings.upserted, domain.SettingSundayBookings)

	// Аудит с состоянием до и после
	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, domain.AuditActionUpdateConfig, entry.Action)
	assert.Equal(t, domain.AuditEntityConfig, entry.EntityType)

	var details struct {
		Before models.SchedulingConfigResponse `json:"before"`
		After  models.SchedulingConfigResponse `json:"after"`
	}
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, 30, details.Before.SlotDurationMinutes)
	assert.Equal(t, 60, details.After.SlotDurationMinutes)
}

func TestUpdateScheduling_BusinessHours(t *testing.T) {
	settings := newFakeSettingsRepo()
	svc := NewService(settings, &fakeAuditRepo{}, fakeTxManager{}, nopLogger{})

	resp, err := svc.UpdateScheduling(context.Background(), &models.UpdateSchedulingConfigRequest{
		StaffID:       7,
		BusinessHours: &models.BusinessHours{Start: "08:00", End: "20:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.BusinessHours.Start)
	assert.Equal(t, "20:00", resp.BusinessHours.End)
	assert.Contains(t, settings.upserted, domain.SettingBusinessHours)
}

func TestUpdateScheduling_ValidationErrors(t *testing.T) {
	svc := NewService(newFakeSettingsRepo(), &fakeAuditRepo{}, fakeTxManager{}, nopLogger{})

	tests := []struct {
		name    string
		req     *models.UpdateSchedulingConfigRequest
		wantErr error
	}{
		{
			"empty request",
			&models.UpdateSchedulingConfigRequest{StaffID: 7},
			ErrInvalidInput,
		},
		{
			"zero staff",
			&models.UpdateSchedulingConfigRequest{SundayBookings: ptr.Ptr(true)},
			ErrInvalidInput,
		},
		{
			"start after end",
			&models.UpdateSchedulingConfigRequest{StaffID: 7, BusinessHours: &models.BusinessHours{Start: "22:00", End: "09:00"}},
			ErrInvalidConfig,
		},
		{
			"bad time format",
			&models.UpdateSchedulingConfigRequest{StaffID: 7, BusinessHours: &models.BusinessHours{Start: "9am", End: "21:00"}},
			ErrInvalidConfig,
		},
		{
			"zero slot duration",
			&models.UpdateSchedulingConfigRequest{StaffID: 7, SlotDurationMinutes: ptr.Ptr(0)},
			ErrInvalidConfig,
		},
		{
			"cutoff out of range",
			&models.UpdateSchedulingConfigRequest{StaffID: 7, SaturdayCutoffHour: ptr.Ptr(24)},
			ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateScheduling(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
