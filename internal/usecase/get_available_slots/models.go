package get_available_slots

import (
	"time"

	"github.com/heitorfr/barber-booking-service/pkg/types"
)

// Request модель запроса на получение слотов барбера на день
type Request struct {
	BarberID  int64     // ID барбера
	ServiceID int64     // ID услуги (определяет длительность слота)
	Date      time.Time // Дата запроса (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	BarberID        int64
	ServiceID       int64
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
// Конфликтующие слоты в список не попадают; прошедшие (только для "сегодня")
// остаются с Available=false и Reason="past" для отдельного текста в UI
type Slot struct {
	StartTime       types.TimeString // Время начала слота, например "10:00"
	DurationMinutes int
	Available       bool
	Reason          string
}
