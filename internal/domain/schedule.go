package domain

// DayConfig конфигурация одного дня недели в расписании барбера.
// Исторически накопилось три формы записи рабочих часов:
//  1. split-day: morningStart/morningEnd + afternoonStart/afternoonEnd
//  2. legacy: startTime/endTime
//  3. совсем старая legacy: start/end
//
// Все присутствующие диапазоны СКЛАДЫВАЮТСЯ (union), ни одна форма
// не исключает другую
type DayConfig struct {
	IsWorking *bool `json:"isWorking,omitempty"`

	MorningStart   *string `json:"morningStart,omitempty"`
	MorningEnd     *string `json:"morningEnd,omitempty"`
	AfternoonStart *string `json:"afternoonStart,omitempty"`
	AfternoonEnd   *string `json:"afternoonEnd,omitempty"`

	// Legacy-формы, поддерживаются для старых записей
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Start     *string `json:"start,omitempty"`
	End       *string `json:"end,omitempty"`
}

// WorkScheduleConfig недельное расписание барбера.
// Ключи - названия дней недели в произвольном регистре и языке
// (английские полные, трёхбуквенные, португальские); неизвестные ключи
// игнорируются при резолвинге
type WorkScheduleConfig map[string]DayConfig

// WorkingInterval рабочий интервал дня в минутах от полуночи, [start, end)
type WorkingInterval struct {
	StartMinute int
	EndMinute   int
}

// Duration возвращает длительность интервала в минутах
func (w WorkingInterval) Duration() int {
	return w.EndMinute - w.StartMinute
}

// BookedInterval занятый интервал (минуты от полуночи), [start, end)
type BookedInterval struct {
	StartMinute int
	EndMinute   int
}

// Overlaps проверяет пересечение с другим интервалом
// Полуоткрытые интервалы: граничащие интервалы НЕ пересекаются
func (b BookedInterval) Overlaps(start, end int) bool {
	return start < b.EndMinute && end > b.StartMinute
}
