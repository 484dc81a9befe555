package config

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidConfig возвращается, когда новая конфигурация не проходит валидацию
	ErrInvalidConfig = errors.New("invalid scheduling configuration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
