package domain

import (
	"time"

	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// TimeSlot запись о состоянии пары (дата, время начала)
// Создается лениво: при успешном бронировании или блокировке админом.
// Уникальность пары (slot_date, start_time) обеспечивается constraint'ом в БД -
// это единственная защита от двойного бронирования
type TimeSlot struct {
	ID        int64
	Date      time.Time // календарный день, время обнулено
	StartTime types.TimeString
	EndTime   types.TimeString

	// Административная блокировка
	IsBlocked   bool
	BlockedBy   *int64
	BlockReason *string

	// Бронирование
	BookedBy  *int64
	BookingID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBooked возвращает true, если слот занят бронированием
func (s *TimeSlot) IsBooked() bool {
	return s.BookedBy != nil
}

// IsAvailable возвращает true, если слот логически свободен
// Запись без брони и без блокировки эквивалентна отсутствию записи
func (s *TimeSlot) IsAvailable() bool {
	return !s.IsBooked() && !s.IsBlocked
}

// CandidateSlot кандидат временного окна, выданный генератором
// Не персистится - живёт только внутри одного расчёта доступности
type CandidateSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
