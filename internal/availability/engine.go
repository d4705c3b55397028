// Package availability - единый движок доступности и разрешения конфликтов
// бронирований. Вся логика генерации слотов, проверки пересечений и
// сканирования свободных дат живёт здесь и только здесь; usecase-слои
// поставляют данные и потребляют результат.
//
// Движок чистый по отношению к своим входам (расписание, снапшот
// бронирований) и сам не выполняет I/O; единственный побочный эффект -
// логирование проблем качества данных
package availability

import (
	"time"

	"github.com/heitorfr/barber-booking-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Engine движок доступности
type Engine struct {
	logger Logger
	step   int // шаг сетки слотов в минутах
}

// NewEngine создает движок; при неположительном шаге используется дефолтный
func NewEngine(logger Logger, stepMinutes int) *Engine {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &Engine{
		logger: logger,
		step:   stepMinutes,
	}
}

// StepMinutes возвращает шаг сетки слотов
func (e *Engine) StepMinutes() int {
	return e.step
}

// DaySlots возвращает список слотов барбера на один день:
// резолвинг расписания -> генерация кандидатов -> индекс занятых
// интервалов -> фильтрация конфликтов и прошедшего времени.
//
// Закрытый день даёт пустой список - это нормальный исход, не ошибка
func (e *Engine) DaySlots(
	schedule domain.WorkScheduleConfig,
	barberID int64,
	date time.Time,
	durationMinutes int,
	bookings []*domain.Booking,
	now time.Time,
) []domain.Slot {
	intervals := e.ResolveDay(schedule, date.Weekday())
	if len(intervals) == 0 {
		return []domain.Slot{}
	}

	candidates := e.GenerateStarts(intervals, durationMinutes)
	booked := BookedIntervals(bookings, barberID, date)

	return FilterSlots(candidates, durationMinutes, booked, e.nowMinuteFor(date, now))
}

// DayBookable отвечает на вопрос "есть ли на этот день хотя бы один
// свободный слот", не перечисляя все слоты: выход на первом кандидате,
// который не в прошлом и не конфликтует.
//
// Это запрос существования для сканирования горизонта; полный список
// слотов на выбранную дату даёт DaySlots
func (e *Engine) DayBookable(
	intervals []domain.WorkingInterval,
	durationMinutes int,
	booked []domain.BookedInterval,
	nowMinute *int,
) bool {
	if durationMinutes <= 0 {
		return false
	}

	for _, iv := range intervals {
		for t := iv.StartMinute; t+durationMinutes <= iv.EndMinute; t += e.step {
			if nowMinute != nil && t <= *nowMinute {
				continue
			}
			if CheckSlot(t, durationMinutes, booked) == nil {
				return true
			}
		}
	}
	return false
}

// nowMinuteFor возвращает текущую минуту дня, если date - сегодня, иначе nil
// Фильтрация прошедшего времени применяется только к сегодняшним запросам
func (e *Engine) nowMinuteFor(date, now time.Time) *int {
	if !sameDay(date, now) {
		return nil
	}
	m := now.Hour()*60 + now.Minute()
	return &m
}
