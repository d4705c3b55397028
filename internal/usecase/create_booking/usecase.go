package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heitorfr/barber-booking-service/internal/availability"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	bookingRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/booking"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
	"github.com/heitorfr/barber-booking-service/pkg/types"
)

// UseCase use case создания бронирования - граница целостности системы.
//
// Проверка конфликтов повторяется по свежему снапшоту внутри SERIALIZABLE
// транзакции с блокировкой строк дня (FOR UPDATE); снапшот, полученный
// клиентом при выборе слота, к моменту коммита уже мог устареть.
// In-memory проверка - это fast-path отказ; авторитетный сигнал конфликта -
// частичный уникальный индекс (barber_id, booking_date, start_minute)
type UseCase struct {
	engine       *availability.Engine
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine *availability.Engine,
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:       engine,
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Конфликт слота - ожидаемый исход, он возвращается типизированной ошибкой
// (availability.ConflictError) и никогда не проглатывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, barber=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	startMinute, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// 3. Получаем барбера с расписанием
	barber, err := uc.staffRepo.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrStorage, err)
	}

	if !barber.IsActive {
		uc.logger.Warn("CreateBooking: barber id=%d is inactive", req.BarberID)
		return nil, ErrBarberInactive
	}

	// 4. Получаем услугу
	service, err := uc.staffRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrStorage, err)
	}

	duration := service.DurationMinutes
	if duration <= 0 {
		// Дефолт вместо жёсткого отказа - событие качества данных каталога
		uc.logger.Warn("CreateBooking: service id=%d has invalid duration %d, using default %d",
			req.ServiceID, duration, domain.DefaultDurationMinutes)
		duration = domain.DefaultDurationMinutes
	}

	// 5. Рабочий день и сетка слотов резолвятся заранее (чистые операции)
	intervals := uc.engine.ResolveDay(barber.Schedule, req.Date.Weekday())
	if len(intervals) == 0 {
		uc.logger.Warn("CreateBooking: barber id=%d does not work on %s",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return nil, ErrDayClosed
	}

	if !containsStart(uc.engine.GenerateStarts(intervals, duration), startMinute) {
		uc.logger.Warn("CreateBooking: time %s is not on the slot grid for barber id=%d",
			req.StartTime, req.BarberID)
		return nil, ErrInvalidSlot
	}

	if isSameDay(req.Date, now) && startMinute <= now.Hour()*60+now.Minute() {
		uc.logger.Warn("CreateBooking: time %s already passed today", req.StartTime)
		return nil, ErrPastTime
	}

	var result *domain.Booking

	// 6. Freshness re-check и вставка в одной SERIALIZABLE транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Свежий снапшот активных бронирований дня с блокировкой FOR UPDATE
		filter := domain.BarberBookingsFilter{
			BarberID:        req.BarberID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByBarberWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrStorage, err)
		}

		// 6.2. Проверка конфликта по свежему индексу занятых интервалов
		booked := availability.BookedIntervals(bookings, req.BarberID, req.Date)
		if err := availability.CheckSlot(startMinute, duration, booked); err != nil {
			uc.logger.Warn("CreateBooking: slot %s conflicts for barber id=%d: %v",
				req.StartTime, req.BarberID, err)
			return err
		}

		// 6.3. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			Reference:       uuid.NewString(),
			ClientID:        req.ClientID,
			BarberID:        req.BarberID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartMinute:     startMinute,
			EndMinute:       startMinute + duration,
			DurationMinutes: duration,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Уникальный индекс поймал конкурентную вставку,
				// прошедшую мимо in-memory проверки
				uc.logger.Warn("CreateBooking: concurrent insert for barber id=%d, slot %s",
					req.BarberID, req.StartTime)
				return &availability.ConflictError{
					StartMinute: startMinute,
					EndMinute:   startMinute + duration,
				}
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrStorage, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d reference=%s created for barber=%d, date=%s, time=%s",
		result.ID, result.Reference, req.BarberID, req.Date.Format(domain.DateFormat), req.StartTime)

	startTime, err := types.NewTimeStringFromMinutes(result.StartMinute)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed stored start minute %d: %v", ErrInternal, result.StartMinute, err)
	}

	return &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		ClientID:        result.ClientID,
		BarberID:        result.BarberID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       startTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		ClientName:      result.ClientName,
		ClientPhone:     result.ClientPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// containsStart проверяет, что выбранное время лежит на сетке кандидатов
func containsStart(candidates []int, start int) bool {
	for _, t := range candidates {
		if t == start {
			return true
		}
	}
	return false
}
