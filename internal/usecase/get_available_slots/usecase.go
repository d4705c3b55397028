package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/heitorfr/barber-booking-service/internal/availability"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
	"github.com/heitorfr/barber-booking-service/pkg/types"
)

// UseCase use case получения слотов барбера на один день
// Вся логика доступности делегируется движку availability;
// usecase только поставляет данные и конвертирует результат
type UseCase struct {
	engine       *availability.Engine
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine *availability.Engine,
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:       engine,
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, service=%d, date=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// Дата в прошлом - нормальный пустой результат не нужен, это ошибка запроса
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Получаем барбера с расписанием
	barber, err := uc.staffRepo.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	if !barber.IsActive {
		uc.logger.Warn("GetAvailableSlots: barber id=%d is inactive", req.BarberID)
		return nil, ErrBarberInactive
	}

	// 3. Получаем услугу и её длительность
	service, err := uc.staffRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration := service.DurationMinutes
	if duration <= 0 {
		// Legacy-каталог может не содержать длительности; дефолт с логом,
		// не жёсткий отказ
		uc.logger.Warn("GetAvailableSlots: service id=%d has invalid duration %d, using default %d",
			req.ServiceID, duration, domain.DefaultDurationMinutes)
		duration = domain.DefaultDurationMinutes
	}

	// 4. Получаем активные бронирования барбера на дату
	filter := domain.BarberBookingsFilter{
		BarberID:        req.BarberID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только занимающие слот бронирования
	}

	bookings, err := uc.bookingRepo.GetByBarberWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Движок: расписание -> кандидаты -> фильтрация конфликтов и прошлого
	slots := uc.engine.DaySlots(barber.Schedule, req.BarberID, req.Date, duration, bookings, now)

	uc.logger.Info("GetAvailableSlots: %d slots for barber=%d, service=%d, date=%s",
		len(slots), req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BarberID:        req.BarberID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           toResponseSlots(slots, duration),
	}, nil
}

func toResponseSlots(slots []domain.Slot, duration int) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		startTime, err := types.NewTimeStringFromMinutes(s.StartMinute)
		if err != nil {
			// Движок не выдаёт стартов за пределами суток
			continue
		}
		result = append(result, Slot{
			StartTime:       startTime,
			DurationMinutes: duration,
			Available:       s.Available,
			Reason:          string(s.Reason),
		})
	}
	return result
}
