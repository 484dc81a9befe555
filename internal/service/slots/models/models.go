package models

import (
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// Request модели

// BlockSlotRequest запрос на блокировку слота
type BlockSlotRequest struct {
	StaffID   int64            `json:"-"`
	Date      time.Time        `json:"-"`
	StartTime types.TimeString `json:"startTime"`
	Reason    *string          `json:"reason,omitempty"`
	IPAddress *string          `json:"-"`
	UserAgent *string          `json:"-"`
}

// UnblockSlotRequest запрос на разблокировку слота
type UnblockSlotRequest struct {
	StaffID   int64   `json:"-"`
	SlotID    int64   `json:"-"`
	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

// Response модели

// TimeSlotResponse ответ с данными записи слота
type TimeSlotResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "16:00"
	EndTime   string `json:"endTime"`   // "16:30"

	IsBlocked   bool    `json:"isBlocked"`
	BlockedBy   *int64  `json:"blockedBy,omitempty"`
	BlockReason *string `json:"blockReason,omitempty"`

	BookedBy  *int64 `json:"bookedBy,omitempty"`
	BookingID *int64 `json:"bookingId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeSlotListResponse ответ со списком записей слотов
type TimeSlotListResponse struct {
	Date  string             `json:"date"`
	Slots []TimeSlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) *TimeSlotResponse {
	if s == nil {
		return nil
	}

	return &TimeSlotResponse{
		ID:          s.ID,
		Date:        s.Date.Format(domain.DateFormat),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		IsBlocked:   s.IsBlocked,
		BlockedBy:   s.BlockedBy,
		BlockReason: s.BlockReason,
		BookedBy:    s.BookedBy,
		BookingID:   s.BookingID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(date time.Time, items []*domain.TimeSlot) *TimeSlotListResponse {
	resp := &TimeSlotListResponse{
		Date:  date.Format(domain.DateFormat),
		Slots: make([]TimeSlotResponse, 0, len(items)),
	}
	for _, s := range items {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
