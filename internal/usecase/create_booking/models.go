package create_booking

import (
	"time"

	"github.com/heitorfr/barber-booking-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID    int64            // ID клиента
	BarberID    int64            // ID барбера
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота, например "10:00"
	ClientName  string           // Имя клиента для записи в истории
	ClientPhone *string          // Телефон клиента (опционально)
	Notes       *string          // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Reference       string // Публичный код бронирования
	ClientID        int64
	BarberID        int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	ServiceName  string
	ServicePrice float64
	ClientName   string
	ClientPhone  *string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
