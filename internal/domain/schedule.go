package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// ErrInvalidConfig возвращается, когда значения конфигурации расписания некорректны
// (нечисловые часы, нулевая длительность слота и т.п.)
var ErrInvalidConfig = errors.New("domain: invalid scheduling config")

// GenerateSlots генерирует упорядоченный список слотов-кандидатов на дату date
// Чистая функция: результат детерминирован по (date, cfg, now), без побочных эффектов.
//
// Алгоритм:
//  1. Воскресенье при выключенных sundayBookings - пустой список
//  2. Суббота после часа отсечки (когда date - сегодня) - пустой список
//  3. Для сегодняшней даты начало сдвигается на now + minBookingHoursAhead,
//     минуты округляются ВВЕРХ до кратного slotDuration
//  4. Слоты идут подряд с шагом slotDuration; слот, чей конец вылезает
//     за конец рабочего дня, отбрасывается целиком, не обрезается
//
// Пустой список - валидный результат, а не ошибка
func GenerateSlots(date time.Time, cfg SchedulingConfig, now time.Time) ([]CandidateSlot, error) {
	slots := make([]CandidateSlot, 0)

	if !cfg.SundayBookings && IsSunday(date) {
		return slots, nil
	}

	if IsAfterSaturdayCutoff(date, now, cfg.SaturdayCutoffHour) {
		return slots, nil
	}

	if cfg.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidConfig, cfg.SlotDurationMinutes)
	}

	startHour, startMinute, err := parseClock(cfg.BusinessHoursStart)
	if err != nil {
		return nil, fmt.Errorf("%w: businessHours.start: %v", ErrInvalidConfig, err)
	}

	endHour, endMinute, err := parseClock(cfg.BusinessHoursEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: businessHours.end: %v", ErrInvalidConfig, err)
	}

	// Для сегодняшней даты начинаем не раньше, чем now + minBookingHoursAhead
	if IsSameDay(date, now) {
		earliest := now.Add(time.Duration(cfg.MinBookingHoursAhead) * time.Hour)

		adjHour := earliest.Hour()
		adjMinute := earliest.Minute()

		// Округляем минуты вверх до ближайшего кратного длительности слота
		if adjMinute%cfg.SlotDurationMinutes != 0 {
			adjMinute = ((adjMinute / cfg.SlotDurationMinutes) + 1) * cfg.SlotDurationMinutes
			if adjMinute >= 60 {
				adjHour += adjMinute / 60
				adjMinute = adjMinute % 60
			}
		}

		if adjHour > startHour || (adjHour == startHour && adjMinute >= startMinute) {
			startHour = adjHour
			startMinute = adjMinute
		}
	}

	curHour := startHour
	curMinute := startMinute

	for curHour < endHour || (curHour == endHour && curMinute < endMinute) {
		endSlotHour := curHour
		endSlotMinute := curMinute + cfg.SlotDurationMinutes

		if endSlotMinute >= 60 {
			endSlotHour += endSlotMinute / 60
			endSlotMinute = endSlotMinute % 60
		}

		// Слот, пересекающий время закрытия, не выдаётся
		if endSlotHour > endHour || (endSlotHour == endHour && endSlotMinute > endMinute) {
			break
		}

		slots = append(slots, CandidateSlot{
			StartTime: types.NewTimeStringFromClock(curHour, curMinute),
			EndTime:   types.NewTimeStringFromClock(endSlotHour, endSlotMinute),
		})

		curHour = endSlotHour
		curMinute = endSlotMinute
	}

	return slots, nil
}

// IsSunday проверяет, что дата - воскресенье
func IsSunday(date time.Time) bool {
	return date.Weekday() == time.Sunday
}

// IsAfterSaturdayCutoff проверяет субботнюю отсечку
// Срабатывает только когда запрошенная дата - суббота и этот же день, что и now:
// для будущих суббот текущее время роли не играет.
// Ровно в cutoffHour:00 отсечка ещё не наступила, cutoffHour:01 - уже наступила
func IsAfterSaturdayCutoff(date, now time.Time, cutoffHour int) bool {
	if date.Weekday() != time.Saturday || !IsSameDay(date, now) {
		return false
	}
	return now.Hour() > cutoffHour || (now.Hour() == cutoffHour && now.Minute() > 0)
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня (время игнорируется)
func IsDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// IsValidBookingDate проверяет, что на дату в принципе можно бронировать:
// не в прошлом и не воскресенье при выключенных sundayBookings
func IsValidBookingDate(date, now time.Time, sundayBookings bool) bool {
	if IsDateInPast(date, now) {
		return false
	}
	if !sundayBookings && IsSunday(date) {
		return false
	}
	return true
}

// SlotStartAt собирает момент начала слота из даты и времени "HH:MM"
func SlotStartAt(date time.Time, startTime types.TimeString) (time.Time, error) {
	hour, minute, err := startTime.Clock()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// IsAtLeastMinHoursAway проверяет, что начало слота отстоит от now
// минимум на minHours часов
func IsAtLeastMinHoursAway(date time.Time, startTime types.TimeString, now time.Time, minHours int) (bool, error) {
	startAt, err := SlotStartAt(date, startTime)
	if err != nil {
		return false, err
	}
	return startAt.Sub(now) >= time.Duration(minHours)*time.Hour, nil
}

// parseClock разбирает строку "HH:MM" на часы и минуты
// Формат проверяется жёстче, чем time.Parse: ровно две компоненты, числа в диапазоне
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("non-numeric hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("non-numeric minute in %q", s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock value out of range in %q", s)
	}

	return hour, minute, nil
}
