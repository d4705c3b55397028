package availability

import (
	"sort"
	"time"

	"github.com/heitorfr/barber-booking-service/internal/domain"
)

// BookedIntervals строит отсортированный список занятых интервалов барбера
// на указанную дату из уже закоммиченных бронирований.
//
// Учитываются только активные бронирования: отменённые и no-show слот
// не блокируют. Конец интервала пересчитывается из длительности, если
// сохранённый конец не больше начала (защита от legacy-записей)
func BookedIntervals(bookings []*domain.Booking, barberID int64, date time.Time) []domain.BookedInterval {
	intervals := make([]domain.BookedInterval, 0, len(bookings))

	for _, b := range bookings {
		if b.BarberID != barberID {
			continue
		}
		if !sameDay(b.BookingDate, date) {
			continue
		}
		if !b.IsActive() {
			continue
		}

		end := b.EndMinute
		if end <= b.StartMinute {
			end = b.StartMinute + b.DurationMinutes
		}

		intervals = append(intervals, domain.BookedInterval{
			StartMinute: b.StartMinute,
			EndMinute:   end,
		})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].StartMinute < intervals[j].StartMinute
	})

	return intervals
}

// sameDay проверяет, что две даты относятся к одному календарному дню
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
