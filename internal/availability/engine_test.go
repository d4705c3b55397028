package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heitorfr/barber-booking-service/internal/domain"
	"github.com/heitorfr/barber-booking-service/pkg/ptr"
)

func booking(barberID int64, date time.Time, startMinute, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		BarberID:        barberID,
		BookingDate:     date,
		StartMinute:     startMinute,
		EndMinute:       startMinute + duration,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestDaySlots_MorningSchedule(t *testing.T) {
	// Сценарий: {isWorking:true, morningStart:"08:00", morningEnd:"12:00"}, услуга 30 минут
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{
		"monday": {
			IsWorking:    ptr.Ptr(true),
			MorningStart: ptr.Ptr("08:00"),
			MorningEnd:   ptr.Ptr("12:00"),
		},
	}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC) // понедельник
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC) // не сегодня

	slots := engine.DaySlots(cfg, 1, date, 30, nil, now)

	starts := make([]int, len(slots))
	for i, s := range slots {
		starts[i] = s.StartMinute
	}
	// 11:30+30=12:00 помещается; 12:00 уже нет
	assert.Equal(t, []int{480, 510, 540, 570, 600, 630, 660, 690}, starts)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestDaySlots_ExistingBookingRemovesSlot(t *testing.T) {
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{
		"monday": {
			IsWorking:    ptr.Ptr(true),
			MorningStart: ptr.Ptr("08:00"),
			MorningEnd:   ptr.Ptr("12:00"),
		},
	}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		booking(1, date, 540, 30, domain.StatusConfirmed), // 09:00-09:30
	}

	slots := engine.DaySlots(cfg, 1, date, 30, bookings, now)

	starts := make([]int, len(slots))
	for i, s := range slots {
		starts[i] = s.StartMinute
	}
	// 09:00 удалён, остальные без изменений
	assert.Equal(t, []int{480, 510, 570, 600, 630, 660, 690}, starts)
}

func TestDaySlots_CancelledBookingDoesNotBlock(t *testing.T) {
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{
		"monday": {IsWorking: ptr.Ptr(true), MorningStart: ptr.Ptr("09:00"), MorningEnd: ptr.Ptr("10:00")},
	}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		booking(1, date, 540, 30, domain.StatusCancelledByClient),
		booking(1, date, 570, 30, domain.StatusNoShow),
	}

	slots := engine.DaySlots(cfg, 1, date, 30, bookings, now)

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestDaySlots_FallbackWorkday(t *testing.T) {
	// Сценарий: {isWorking:true} без явных диапазонов -> 09:00-18:00
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{"monday": {IsWorking: ptr.Ptr(true)}}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	slots := engine.DaySlots(cfg, 1, date, 30, nil, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, 540, slots[0].StartMinute)                 // 09:00
	assert.Equal(t, 1050, slots[len(slots)-1].StartMinute)     // 17:30
	assert.Equal(t, 1080, slots[len(slots)-1].EndMinute)       // 18:00
	assert.Len(t, slots, 18)
}

func TestDaySlots_ExplicitClosureYieldsNoSlots(t *testing.T) {
	// Сценарий: {isWorking:false, morningStart:"08:00", morningEnd:"12:00"} -> ноль слотов
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{
		"monday": {
			IsWorking:    ptr.Ptr(false),
			MorningStart: ptr.Ptr("08:00"),
			MorningEnd:   ptr.Ptr("12:00"),
		},
	}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	assert.Empty(t, engine.DaySlots(cfg, 1, date, 30, nil, now))
}

func TestDaySlots_PastTimeExclusionToday(t *testing.T) {
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{
		"monday": {MorningStart: ptr.Ptr("08:00"), MorningEnd: ptr.Ptr("12:00")},
	}

	// Запрос на сегодня, сейчас 09:10
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 31, 9, 10, 0, 0, time.UTC)

	slots := engine.DaySlots(cfg, 1, date, 30, nil, now)

	for _, s := range slots {
		if s.StartMinute <= 9*60+10 {
			assert.False(t, s.Available, "slot %d must not be available", s.StartMinute)
			assert.Equal(t, domain.SlotReasonPast, s.Reason)
		} else {
			assert.True(t, s.Available, "slot %d must be available", s.StartMinute)
		}
	}
}

// Ни один возвращённый слот не пересекается ни с одним активным бронированием
func TestDaySlots_NoOverlapProperty(t *testing.T) {
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{
		"monday": {MorningStart: ptr.Ptr("08:00"), MorningEnd: ptr.Ptr("20:00")},
	}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		booking(1, date, 480, 45, domain.StatusConfirmed),
		booking(1, date, 600, 90, domain.StatusPending),
		booking(1, date, 750, 15, domain.StatusInProgress),
		booking(1, date, 1000, 60, domain.StatusCompleted),
	}

	for _, duration := range []int{15, 30, 45, 60, 75} {
		slots := engine.DaySlots(cfg, 1, date, duration, bookings, now)
		booked := BookedIntervals(bookings, 1, date)

		for _, s := range slots {
			for _, b := range booked {
				assert.False(t, b.Overlaps(s.StartMinute, s.EndMinute),
					"duration=%d slot=%d overlaps booking %d-%d", duration, s.StartMinute, b.StartMinute, b.EndMinute)
			}
		}
	}
}

func TestDayBookable(t *testing.T) {
	engine := newTestEngine()
	intervals := []domain.WorkingInterval{{StartMinute: 540, EndMinute: 600}} // 09:00-10:00

	t.Run("free day is bookable", func(t *testing.T) {
		assert.True(t, engine.DayBookable(intervals, 30, nil, nil))
	})

	t.Run("fully booked day is not bookable", func(t *testing.T) {
		booked := []domain.BookedInterval{{StartMinute: 540, EndMinute: 600}}
		assert.False(t, engine.DayBookable(intervals, 30, booked, nil))
	})

	t.Run("one free slot is enough", func(t *testing.T) {
		booked := []domain.BookedInterval{{StartMinute: 540, EndMinute: 570}}
		assert.True(t, engine.DayBookable(intervals, 30, booked, nil))
	})

	t.Run("past slots do not count", func(t *testing.T) {
		assert.False(t, engine.DayBookable(intervals, 30, nil, ptr.Ptr(600)))
	})

	t.Run("closed day is not bookable", func(t *testing.T) {
		assert.False(t, engine.DayBookable(nil, 30, nil, nil))
	})
}

// Согласованность горизонта: DayBookable == (в DaySlots есть доступный слот)
func TestHorizonConsistency(t *testing.T) {
	engine := newTestEngine()
	cfg := domain.WorkScheduleConfig{
		"monday": {MorningStart: ptr.Ptr("09:00"), MorningEnd: ptr.Ptr("11:00")},
	}

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	scenarios := [][]*domain.Booking{
		nil,
		{booking(1, date, 540, 60, domain.StatusConfirmed)},
		{booking(1, date, 540, 120, domain.StatusConfirmed)}, // весь день занят
		{booking(1, date, 540, 120, domain.StatusCancelledByShop)},
	}

	for i, bookings := range scenarios {
		slots := engine.DaySlots(cfg, 1, date, 30, bookings, now)
		hasAvailable := false
		for _, s := range slots {
			if s.Available {
				hasAvailable = true
				break
			}
		}

		intervals := engine.ResolveDay(cfg, date.Weekday())
		booked := BookedIntervals(bookings, 1, date)
		bookable := engine.DayBookable(intervals, 30, booked, engine.nowMinuteFor(date, now))

		assert.Equal(t, hasAvailable, bookable, "scenario %d", i)
	}
}

func TestBookedIntervals(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 1)

	bookings := []*domain.Booking{
		booking(1, date, 600, 30, domain.StatusConfirmed),
		booking(1, date, 540, 30, domain.StatusPending),
		booking(2, date, 570, 30, domain.StatusConfirmed),            // другой барбер
		booking(1, otherDate, 570, 30, domain.StatusConfirmed),       // другая дата
		booking(1, date, 660, 30, domain.StatusCancelledByClient),    // не занимает
	}

	intervals := BookedIntervals(bookings, 1, date)

	require.Len(t, intervals, 2)
	// Отсортированы по началу
	assert.Equal(t, domain.BookedInterval{StartMinute: 540, EndMinute: 570}, intervals[0])
	assert.Equal(t, domain.BookedInterval{StartMinute: 600, EndMinute: 630}, intervals[1])
}

func TestBookedIntervals_RecomputesBadEnd(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	legacy := &domain.Booking{
		BarberID:        1,
		BookingDate:     date,
		StartMinute:     540,
		EndMinute:       540, // повреждённая legacy-запись: конец не позже начала
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	}

	intervals := BookedIntervals([]*domain.Booking{legacy}, 1, date)

	require.Len(t, intervals, 1)
	assert.Equal(t, 585, intervals[0].EndMinute)
}
