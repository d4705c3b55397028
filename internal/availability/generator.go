package availability

import "github.com/heitorfr/barber-booking-service/internal/domain"

// GenerateStarts перечисляет кандидатов начала слота (минуты от полуночи)
// для услуги указанной длительности.
//
// Для каждого интервала [s, e) выдаются t = s, s+step, s+2*step, ...
// пока t+duration <= e. Длительность не обязана быть кратной шагу.
//
// Интервалы обрабатываются независимо и по порядку; при пересекающихся
// интервалах возможны повторы стартов - дедупликация на вызывающей стороне
// (резолвер отдаёт интервалы отсортированными, на практике они дизъюнктны)
func (e *Engine) GenerateStarts(intervals []domain.WorkingInterval, durationMinutes int) []int {
	if durationMinutes <= 0 {
		return nil
	}

	starts := make([]int, 0)
	for _, iv := range intervals {
		for t := iv.StartMinute; t+durationMinutes <= iv.EndMinute; t += e.step {
			starts = append(starts, t)
		}
	}
	return starts
}
