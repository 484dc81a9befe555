package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда запись слота не найдена
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrSlotTaken возвращается, когда слот уже забронирован и не может быть заблокирован
	ErrSlotTaken = errors.New("time slot is already booked")

	// ErrNotBlocked возвращается при попытке разблокировать незаблокированный слот
	ErrNotBlocked = errors.New("time slot is not blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
