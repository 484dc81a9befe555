package get_available_slots

import (
	"time"

	"github.com/wipeandshine/scheduling-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID int64     // ID пользователя (для логирования, не влияет на результат)
	Date   time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time              // Дата, на которую запрашивались слоты
	Slots []domain.CandidateSlot // Доступные слоты в хронологическом порядке
}
