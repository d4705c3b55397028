package domain

import "time"

// Barber represents an employee of the barbershop
// Расписание принадлежит барберу и меняется только через админку
type Barber struct {
	ID        int64
	Name      string
	IsActive  bool
	Schedule  WorkScheduleConfig
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents a bookable service from the catalog
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	IsActive        bool
}
