package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/heitorfr/barber-booking-service/internal/availability"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
	"github.com/heitorfr/barber-booking-service/internal/service/schedule/models"
	"github.com/heitorfr/barber-booking-service/pkg/types"
)

// Service сервис управления недельным расписанием барбера.
//
// Чтение расписания при резолвинге слотов лениво к формату часов
// (legacy-строки), но на записи валидация строгая: неизвестные дни и
// кривые значения времени отклоняются на границе ввода данных, чтобы
// новые строки не пополняли legacy-зоопарк
type Service struct {
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// GetSchedule получает расписание барбера
// Доступно только самому барберу (кабинет мастера)
func (s *Service) GetSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for barber=%d by user=%d", req.BarberID, req.UserID)

	if req.UserID != req.BarberID {
		s.logger.Warn("GetSchedule: access denied for user=%d to barber=%d schedule", req.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	barber, err := s.staffRepo.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrBarberNotFound) {
			s.logger.Warn("GetSchedule: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetSchedule: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return &models.ScheduleResponse{
		BarberID: barber.ID,
		Schedule: barber.Schedule,
	}, nil
}

// UpdateSchedule заменяет недельное расписание барбера
// Доступно только самому барберу
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for barber=%d by user=%d", req.BarberID, req.UserID)

	if req.UserID != req.BarberID {
		s.logger.Warn("UpdateSchedule: access denied for user=%d to barber=%d schedule", req.UserID, req.BarberID)
		return nil, ErrAccessDenied
	}

	if err := validateSchedule(req.Schedule); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for barber=%d: %v", req.BarberID, err)
		return nil, err
	}

	if _, err := s.staffRepo.GetBarber(ctx, req.BarberID); err != nil {
		if errors.Is(err, staffRepo.ErrBarberNotFound) {
			s.logger.Warn("UpdateSchedule: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	if err := s.staffRepo.UpdateBarberSchedule(ctx, req.BarberID, req.Schedule); err != nil {
		if errors.Is(err, staffRepo.ErrBarberNotFound) {
			s.logger.Warn("UpdateSchedule: barber id=%d not found during update", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for barber=%d", req.BarberID)
	return &models.ScheduleResponse{
		BarberID: req.BarberID,
		Schedule: req.Schedule,
	}, nil
}

// validateSchedule строго валидирует недельное расписание на записи
func validateSchedule(cfg domain.WorkScheduleConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: schedule is required", ErrInvalidSchedule)
	}

	for key, day := range cfg {
		if _, ok := availability.ParseWeekday(key); !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, key)
		}

		if err := validateDay(key, day); err != nil {
			return err
		}
	}

	return nil
}

func validateDay(key string, day domain.DayConfig) error {
	ranges := 0

	pairs := []struct {
		name       string
		start, end *string
	}{
		{"morning", day.MorningStart, day.MorningEnd},
		{"afternoon", day.AfternoonStart, day.AfternoonEnd},
		{"startTime/endTime", day.StartTime, day.EndTime},
		{"start/end", day.Start, day.End},
	}

	for _, p := range pairs {
		if p.start == nil && p.end == nil {
			continue
		}
		if p.start == nil || p.end == nil {
			return fmt.Errorf("%w: %s: %s range is incomplete", ErrInvalidSchedule, key, p.name)
		}

		startMin, err := strictMinutes(*p.start)
		if err != nil {
			return fmt.Errorf("%w: %s: %s start: %v", ErrInvalidSchedule, key, p.name, err)
		}
		endMin, err := strictMinutes(*p.end)
		if err != nil {
			return fmt.Errorf("%w: %s: %s end: %v", ErrInvalidSchedule, key, p.name, err)
		}
		if startMin >= endMin {
			return fmt.Errorf("%w: %s: %s range is empty or inverted", ErrInvalidSchedule, key, p.name)
		}
		ranges++
	}

	// Рабочий день без часов на записи не принимаем: fallback на дефолтный
	// рабочий день существует только ради legacy-строк
	if day.IsWorking != nil && *day.IsWorking && ranges == 0 {
		return fmt.Errorf("%w: %s: working day must define at least one time range", ErrInvalidSchedule, key)
	}

	return nil
}

// strictMinutes парсит строго "HH:MM" и возвращает минуты от полуночи
func strictMinutes(s string) (int, error) {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return 0, err
	}
	return ts.Minutes()
}
