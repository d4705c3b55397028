package get_bookable_dates

import "time"

// Request модель запроса доступных дат в горизонте
type Request struct {
	BarberID    int64
	ServiceID   int64
	HorizonDays int // 0 -> дефолтный горизонт
}

// Response модель ответа со списком дат, на которые есть хотя бы один
// свободный слот; даты отсортированы по возрастанию
type Response struct {
	BarberID    int64
	ServiceID   int64
	HorizonDays int
	Dates       []time.Time
}
