package models

import (
	"github.com/heitorfr/barber-booking-service/internal/domain"
)

// GetScheduleRequest запрос на получение расписания барбера
type GetScheduleRequest struct {
	UserID   int64 `json:"userId"`
	BarberID int64 `json:"barberId"`
}

// UpdateScheduleRequest запрос на замену недельного расписания барбера
// Расписание заменяется целиком: частичное обновление дней усложняет
// рассуждение о том, какая форма записи часов осталась в строке
type UpdateScheduleRequest struct {
	UserID   int64                     `json:"userId"`
	BarberID int64                     `json:"barberId"`
	Schedule domain.WorkScheduleConfig `json:"schedule"`
}

// ScheduleResponse ответ с расписанием барбера
type ScheduleResponse struct {
	BarberID int64                     `json:"barberId"`
	Schedule domain.WorkScheduleConfig `json:"schedule"`
}
