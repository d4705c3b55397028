package get_bookable_dates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/heitorfr/barber-booking-service/internal/availability"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
)

// UseCase use case сканирования горизонта: какие из ближайших дней имеют
// хотя бы один свободный слот. Это запрос существования - полный список
// слотов на выбранный день отдаёт get_available_slots.
//
// Контракт для UI (календарь витрины): если ранее выбранная дата пропала из
// списка, клиент перевыбирает первую доступную дату либо снимает выбор.
// Отмена контекста прерывает сканирование: результат устаревшего запроса
// никогда не перезапишет более новый, если клиент отменяет предыдущий.
type UseCase struct {
	engine         *availability.Engine
	bookingRepo    BookingRepository
	staffRepo      StaffRepository
	timeProvider   TimeProvider
	logger         Logger
	workers        int
	defaultHorizon int
}

// NewUseCase создает новый экземпляр use case
// workers ограничивает число параллельных чтений бронирований при
// сканировании; defaultHorizon применяется к запросам без явного горизонта
func NewUseCase(
	engine *availability.Engine,
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	workers int,
	defaultHorizon int,
	logger Logger,
) *UseCase {
	if workers <= 0 {
		workers = domain.DefaultScanWorkers
	}
	if defaultHorizon <= 0 || defaultHorizon > domain.MaxHorizonDays {
		defaultHorizon = domain.DefaultHorizonDays
	}
	return &UseCase{
		engine:         engine,
		bookingRepo:    bookingRepo,
		staffRepo:      staffRepo,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		workers:        workers,
		defaultHorizon: defaultHorizon,
	}
}

// Execute выполняет сканирование горизонта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookableDates: barber=%d, service=%d, horizon=%d",
		req.BarberID, req.ServiceID, req.HorizonDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBookableDates: validation failed: %v", err)
		return nil, err
	}

	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = uc.defaultHorizon
	}

	// 2. Получаем барбера и услугу
	barber, err := uc.staffRepo.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetBookableDates: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetBookableDates: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	if !barber.IsActive {
		uc.logger.Warn("GetBookableDates: barber id=%d is inactive", req.BarberID)
		return nil, ErrBarberInactive
	}

	service, err := uc.staffRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetBookableDates: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetBookableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration := service.DurationMinutes
	if duration <= 0 {
		uc.logger.Warn("GetBookableDates: service id=%d has invalid duration %d, using default %d",
			req.ServiceID, duration, domain.DefaultDurationMinutes)
		duration = domain.DefaultDurationMinutes
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// 3. Резолвим расписание для каждого дня горизонта (чистая операция);
	// закрытые дни отбрасываются без единого похода в хранилище
	type openDay struct {
		offset    int
		date      time.Time
		intervals []domain.WorkingInterval
	}

	openDays := make([]openDay, 0, horizon)
	for offset := 0; offset < horizon; offset++ {
		date := today.AddDate(0, 0, offset)
		intervals := uc.engine.ResolveDay(barber.Schedule, date.Weekday())
		if len(intervals) == 0 {
			continue // закрытый день - нормальный исход, не ошибка
		}
		openDays = append(openDays, openDay{offset: offset, date: date, intervals: intervals})
	}

	// 4. Чтения бронирований по дням независимы - раздаём их воркерам
	// и собираем результаты в порядке дат
	bookable := make([]bool, len(openDays))
	dayErrs := make([]error, len(openDays))

	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup

	for i, day := range openDays {
		wg.Add(1)
		go func(i int, day openDay) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				dayErrs[i] = ctx.Err()
				return
			}
			defer func() { <-sem }()

			filter := domain.BarberBookingsFilter{
				BarberID:        req.BarberID,
				StartDate:       &day.date,
				EndDate:         &day.date,
				IncludeInactive: false,
			}

			bookings, err := uc.bookingRepo.GetByBarberWithFilter(ctx, filter)
			if err != nil {
				dayErrs[i] = err
				return
			}

			booked := availability.BookedIntervals(bookings, req.BarberID, day.date)

			var nowMinute *int
			if day.offset == 0 {
				m := now.Hour()*60 + now.Minute()
				nowMinute = &m
			}

			bookable[i] = uc.engine.DayBookable(day.intervals, duration, booked, nowMinute)
		}(i, day)
	}

	wg.Wait()

	for _, err := range dayErrs {
		if err != nil {
			uc.logger.Error("GetBookableDates: day scan failed: %v", err)
			return nil, fmt.Errorf("%w: day scan failed: %v", ErrInternal, err)
		}
	}

	dates := make([]time.Time, 0, len(openDays))
	for i, day := range openDays {
		if bookable[i] {
			dates = append(dates, day.date)
		}
	}

	uc.logger.Info("GetBookableDates: %d of %d days bookable for barber=%d, service=%d",
		len(dates), horizon, req.BarberID, req.ServiceID)

	return &Response{
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		HorizonDays: horizon,
		Dates:       dates,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.HorizonDays < 0 || req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be in [0, %d]", ErrInvalidInput, domain.MaxHorizonDays)
	}

	return nil
}
