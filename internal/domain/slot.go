package domain

// SlotReason причина недоступности слота
// Конфликтующие слоты в выдачу вообще не попадают, поэтому
// единственная причина недоступности в выдаче - прошедшее время
type SlotReason string

const (
	SlotReasonNone SlotReason = ""
	SlotReasonPast SlotReason = "past"
)

// Slot is a candidate bookable interval of exactly the service duration.
// Слоты эфемерны: вычисляются на каждый запрос и никогда не сохраняются
type Slot struct {
	StartMinute int
	EndMinute   int
	Available   bool
	Reason      SlotReason
}
