package domain

import (
	"encoding/json"
	"time"
)

// Audit actions
const (
	AuditActionBlockTimeSlot   = "block_time_slot"
	AuditActionUnblockTimeSlot = "unblock_time_slot"
	AuditActionUpdateConfig    = "update_config"
)

// Audit entity types
const (
	AuditEntityTimeSlot = "time_slot"
	AuditEntityConfig   = "config"
)

// AuditLog запись аудита административного действия
// Сервис только пишет аудит; чтение и поиск по журналу - вне этого сервиса
type AuditLog struct {
	ID         int64
	UserID     int64
	Action     string
	EntityType string
	EntityID   *int64
	Details    json.RawMessage
	IPAddress  *string
	UserAgent  *string
	CreatedAt  time.Time
}
