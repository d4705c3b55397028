package get_bookable_dates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heitorfr/barber-booking-service/internal/availability"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
	"github.com/heitorfr/barber-booking-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

// mockBookingRepo потокобезопасен: воркеры сканера зовут его параллельно
type mockBookingRepo struct {
	mu       sync.Mutex
	byDate   map[string][]*domain.Booking
	err      error
	requests int
}

func (m *mockBookingRepo) GetByBarberWithFilter(_ context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	if m.err != nil {
		return nil, m.err
	}
	if filter.StartDate == nil {
		return nil, nil
	}
	return m.byDate[filter.StartDate.Format(domain.DateFormat)], nil
}

type mockStaffRepo struct {
	barber     *domain.Barber
	barberErr  error
	service    *domain.Service
	serviceErr error
}

func (m *mockStaffRepo) GetBarber(_ context.Context, _ int64) (*domain.Barber, error) {
	if m.barberErr != nil {
		return nil, m.barberErr
	}
	return m.barber, nil
}

func (m *mockStaffRepo) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	if m.serviceErr != nil {
		return nil, m.serviceErr
	}
	return m.service, nil
}

// Барбер работает только по понедельникам с 09:00 до 10:00 (два слота по 30)
func testBarber() *domain.Barber {
	return &domain.Barber{
		ID:       7,
		Name:     "Rafael",
		IsActive: true,
		Schedule: domain.WorkScheduleConfig{
			"monday": {
				IsWorking:    ptr.Ptr(true),
				MorningStart: ptr.Ptr("09:00"),
				MorningEnd:   ptr.Ptr("10:00"),
			},
		},
	}
}

func testService() *domain.Service {
	return &domain.Service{ID: 3, Name: "Corte masculino", Price: 60, DurationMinutes: 30, IsActive: true}
}

func newTestUseCase(br *mockBookingRepo, sr *mockStaffRepo, now time.Time) *UseCase {
	uc := NewUseCase(availability.NewEngine(nopLogger{}, 30), br, sr, 4, 0, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_OnlyWorkingDaysReturned(t *testing.T) {
	br := &mockBookingRepo{}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	// Вторник 2026-08-25; горизонт 14 дней покрывает понедельники 31.08 и 07.09
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: 14})
	require.NoError(t, err)

	require.Len(t, resp.Dates, 2)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), resp.Dates[0])
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), resp.Dates[1])

	// Закрытые дни не порождают походов в хранилище
	assert.Equal(t, 2, br.requests)
}

func TestExecute_FullyBookedDayExcluded(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	br := &mockBookingRepo{byDate: map[string][]*domain.Booking{
		monday.Format(domain.DateFormat): {
			{BarberID: 7, BookingDate: monday, StartMinute: 540, EndMinute: 570, DurationMinutes: 30, Status: domain.StatusConfirmed},
			{BarberID: 7, BookingDate: monday, StartMinute: 570, EndMinute: 600, DurationMinutes: 30, Status: domain.StatusConfirmed},
		},
	}}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: 14})
	require.NoError(t, err)

	// 31.08 занят полностью, остаётся только 07.09
	require.Len(t, resp.Dates, 1)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), resp.Dates[0])
}

func TestExecute_PartiallyBookedDayIncluded(t *testing.T) {
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	br := &mockBookingRepo{byDate: map[string][]*domain.Booking{
		monday.Format(domain.DateFormat): {
			{BarberID: 7, BookingDate: monday, StartMinute: 540, EndMinute: 570, DurationMinutes: 30, Status: domain.StatusConfirmed},
		},
	}}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: 14})
	require.NoError(t, err)
	require.Len(t, resp.Dates, 2)
}

func TestExecute_TodayExcludedWhenAllSlotsPassed(t *testing.T) {
	// Сегодня понедельник, 11:00: оба слота (09:00, 09:30) уже прошли
	br := &mockBookingRepo{}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 31, 11, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: 8})
	require.NoError(t, err)

	// Остаётся только следующий понедельник
	require.Len(t, resp.Dates, 1)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), resp.Dates[0])
}

func TestExecute_TodayIncludedWhenSlotsRemain(t *testing.T) {
	// Понедельник, 08:00: оба слота ещё впереди
	br := &mockBookingRepo{}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: 1})
	require.NoError(t, err)
	require.Len(t, resp.Dates, 1)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), resp.Dates[0])
}

func TestExecute_DefaultHorizon(t *testing.T) {
	br := &mockBookingRepo{}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHorizonDays, resp.HorizonDays)
}

func TestExecute_DatesAscending(t *testing.T) {
	br := &mockBookingRepo{}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: 60})
	require.NoError(t, err)

	for i := 1; i < len(resp.Dates); i++ {
		assert.True(t, resp.Dates[i-1].Before(resp.Dates[i]))
	}
}

func TestExecute_StorageErrorPropagates(t *testing.T) {
	br := &mockBookingRepo{err: errors.New("connection reset")}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: 14})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Errors(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	t.Run("barber not found", func(t *testing.T) {
		uc := newTestUseCase(&mockBookingRepo{}, &mockStaffRepo{barberErr: staffRepo.ErrBarberNotFound}, now)
		_, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3})
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})

	t.Run("barber inactive", func(t *testing.T) {
		barber := testBarber()
		barber.IsActive = false
		uc := newTestUseCase(&mockBookingRepo{}, &mockStaffRepo{barber: barber}, now)
		_, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3})
		assert.ErrorIs(t, err, ErrBarberInactive)
	})

	t.Run("service not found", func(t *testing.T) {
		uc := newTestUseCase(&mockBookingRepo{}, &mockStaffRepo{barber: testBarber(), serviceErr: staffRepo.ErrServiceNotFound}, now)
		_, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("horizon above limit", func(t *testing.T) {
		uc := newTestUseCase(&mockBookingRepo{}, &mockStaffRepo{}, now)
		_, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: domain.MaxHorizonDays + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative horizon", func(t *testing.T) {
		uc := newTestUseCase(&mockBookingRepo{}, &mockStaffRepo{}, now)
		_, err := uc.Execute(context.Background(), &Request{BarberID: 7, ServiceID: 3, HorizonDays: -1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
