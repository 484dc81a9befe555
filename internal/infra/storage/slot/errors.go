package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда запись слота не найдена
	ErrSlotNotFound = errors.New("slot.repository: time slot not found")

	// ErrSlotTaken возвращается, когда слот уже забронирован или заблокирован
	// Это проигравшая сторона гонки за слот: constraint пропустил ровно одного
	ErrSlotTaken = errors.New("slot.repository: time slot already taken")

	// ErrSlotNotBlocked возвращается при попытке разблокировать незаблокированный слот
	ErrSlotNotBlocked = errors.New("slot.repository: time slot is not blocked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
