package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/heitorfr/barber-booking-service/internal/domain"
	"github.com/heitorfr/barber-booking-service/pkg/dbmetrics"
	"github.com/heitorfr/barber-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий барберов и каталога услуг
// Расписание барбера хранится как JSONB в строке барбера: расписание
// принадлежит барберу и меняется только через админку
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBarber получает барбера вместе с недельным расписанием
func (r *Repository) GetBarber(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_active",
		"schedule",
		"created_at",
		"updated_at",
	).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBarber - build select query: %v", ErrBuildQuery, err)
	}

	var (
		barber      domain.Barber
		scheduleRaw []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&barber.ID,
		&barber.Name,
		&barber.IsActive,
		&scheduleRaw,
		&barber.CreatedAt,
		&barber.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarber - scan barber: %v", ErrScanRow, err)
	}

	if len(scheduleRaw) > 0 {
		if err := json.Unmarshal(scheduleRaw, &barber.Schedule); err != nil {
			return nil, fmt.Errorf("%w: GetBarber - decode schedule: %v", ErrScanRow, err)
		}
	}

	return &barber, nil
}

// UpdateBarberSchedule заменяет недельное расписание барбера
func (r *Repository) UpdateBarberSchedule(ctx context.Context, barberID int64, schedule domain.WorkScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("%w: UpdateBarberSchedule - encode schedule: %v", ErrInvalidSchedule, err)
	}

	query, args, err := psqlbuilder.Update("barbers").
		Set("schedule", payload).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": barberID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBarberSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateBarberSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBarberSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

// GetService получает услугу из каталога
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"duration_minutes",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.Price,
		&service.DurationMinutes,
		&service.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}
