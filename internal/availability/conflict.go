package availability

import (
	"errors"
	"fmt"

	"github.com/heitorfr/barber-booking-service/internal/domain"
)

// ErrSlotConflict возвращается, когда слот пересекается с существующим бронированием
// Конфликт - ожидаемый бизнес-исход, а не сбой; обработчики отдают его клиенту как 409
var ErrSlotConflict = errors.New("availability: slot conflicts with an existing booking")

// ConflictError конфликт слота с конкретным занятым интервалом
// Интервал сохраняется для диагностики
type ConflictError struct {
	StartMinute int
	EndMinute   int
}

// Error реализует error
func (e *ConflictError) Error() string {
	return fmt.Sprintf("availability: slot conflicts with booking %02d:%02d-%02d:%02d",
		e.StartMinute/60, e.StartMinute%60, e.EndMinute/60, e.EndMinute%60)
}

// Unwrap позволяет errors.Is(err, ErrSlotConflict)
func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}

// CheckSlot проверяет один выбранный слот на конфликт с занятыми интервалами.
// Возвращает nil либо *ConflictError с пересекающимся интервалом.
// Тест пересечения полуоткрытый и строгий: t < e && t+duration > s,
// граничащие интервалы конфликтом не считаются
func CheckSlot(startMinute, durationMinutes int, booked []domain.BookedInterval) error {
	end := startMinute + durationMinutes
	for _, iv := range booked {
		if iv.Overlaps(startMinute, end) {
			return &ConflictError{StartMinute: iv.StartMinute, EndMinute: iv.EndMinute}
		}
	}
	return nil
}

// FilterSlots превращает кандидатов в слоты, убирая конфликтующие
// и помечая прошедшие.
//
// Конфликтующие кандидаты удаляются из выдачи полностью. Если передан
// nowMinute (только для запросов на сегодня), кандидаты с t <= nowMinute
// остаются в выдаче с Available=false и Reason=past - это не конфликт,
// и UI показывает для них другое сообщение. Порядок кандидатов сохраняется
func FilterSlots(candidates []int, durationMinutes int, booked []domain.BookedInterval, nowMinute *int) []domain.Slot {
	slots := make([]domain.Slot, 0, len(candidates))

	for _, t := range candidates {
		if CheckSlot(t, durationMinutes, booked) != nil {
			continue
		}

		slot := domain.Slot{
			StartMinute: t,
			EndMinute:   t + durationMinutes,
			Available:   true,
		}

		if nowMinute != nil && t <= *nowMinute {
			slot.Available = false
			slot.Reason = domain.SlotReasonPast
		}

		slots = append(slots, slot)
	}

	return slots
}
