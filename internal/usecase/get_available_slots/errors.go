package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается при запросе слотов на дату в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidSchedulingConfig возвращается, когда конфигурация расписания
	// не разбирается; генератор не угадывает значения вместо некорректных
	ErrInvalidSchedulingConfig = errors.New("get_available_slots: invalid scheduling config")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
