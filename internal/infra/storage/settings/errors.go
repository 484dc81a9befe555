package settings

import "errors"

var (
	// ErrSettingNotFound возвращается, когда настройка не найдена
	ErrSettingNotFound = errors.New("settings.repository: setting not found")

	// ErrInvalidValue возвращается, когда значение настройки не разбирается
	// в ожидаемый тип
	ErrInvalidValue = errors.New("settings.repository: invalid setting value")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
