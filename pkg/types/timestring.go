package types

import (
	"errors"
	"fmt"
	"time"
)

// timeLayout формат времени "HH:MM" (24-часовой)
const timeLayout = "15:04"

// ErrInvalidTimeString возвращается при некорректном формате строки времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// TimeString время суток в формате "HH:MM" (например, "09:30")
// Используется для хранения времени слотов без привязки к дате и таймзоне
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// NewTimeStringFromClock создает TimeString из часов и минут
func NewTimeStringFromClock(hour, minute int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute))
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата "HH:MM"
func (t TimeString) Validate() error {
	_, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Clock возвращает часы и минуты
func (t TimeString) Clock() (hour, minute int, err error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// minutes возвращает время как количество минут от полуночи
func (t TimeString) minutes() (int, error) {
	hour, minute, err := t.Clock()
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// IsBefore проверяет, что время строго раньше other
// Некорректные значения считаются равными (сравнение не выполняется)
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a > b
}

// AddMinutes возвращает новое время, сдвинутое на m минут вперёд
// Переполнение суток не поддерживается - время слотов не пересекает полночь
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.minutes()
	if err != nil {
		return "", err
	}
	total += m
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes is out of day range", ErrInvalidTimeString, string(t), m)
	}
	return NewTimeStringFromClock(total/60, total%60), nil
}
