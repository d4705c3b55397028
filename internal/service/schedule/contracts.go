package schedule

import (
	"context"

	"github.com/heitorfr/barber-booking-service/internal/domain"
)

// StaffRepository интерфейс репозитория барберов
type StaffRepository interface {
	GetBarber(ctx context.Context, id int64) (*domain.Barber, error)
	UpdateBarberSchedule(ctx context.Context, id int64, schedule domain.WorkScheduleConfig) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
