package create_booking

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSundayClosed возвращается при попытке бронирования на воскресенье
	ErrSundayClosed = errors.New("create_booking: bookings are closed on sundays")

	// ErrTooLateToBook возвращается, когда слот не проходит по минимальному запасу времени
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не совпадает ни с одним слотом расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или заблокирован
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
