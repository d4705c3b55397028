package domain

// Default configuration values
const (
	DefaultSlotStepMinutes    = 30 // шаг сетки слотов
	DefaultDurationMinutes    = 30 // длительность услуги, если в каталоге её нет
	DefaultHorizonDays        = 45 // окно сканирования доступных дат
	DefaultScanWorkers        = 8  // воркеры horizon-сканирования
	DefaultWorkdayStartMinute = 9 * 60
	DefaultWorkdayEndMinute   = 18 * 60
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MinHorizonDays              = 1
	MaxHorizonDays              = 365
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MinutesPerDay               = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется при фильтрации бронирований для проверки конфликтов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByShop,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
