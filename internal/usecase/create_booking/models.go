package create_booking

import (
	"time"

	"github.com/wipeandshine/scheduling-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	ServiceID int64            // ID услуги мойки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "16:00")

	// Контактные данные клиента
	CustomerName    string // Имя клиента
	Phone           string // Контактный телефон
	CarNumber       string // Госномер автомобиля
	ParkingLocation string // Место стоянки (этаж, номер места)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	UserID    int64            // ID пользователя
	ServiceID int64            // ID услуги
	SlotID    int64            // ID занятой записи слота

	BookingDate time.Time        // Дата бронирования
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время окончания

	Status        string // Статус бронирования
	PaymentStatus string // Статус оплаты

	CustomerName    string // Имя клиента
	Phone           string // Телефон
	CarNumber       string // Госномер
	ParkingLocation string // Место стоянки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
