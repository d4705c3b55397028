package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heitorfr/barber-booking-service/internal/availability"
	"github.com/heitorfr/barber-booking-service/internal/domain"
	bookingRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/booking"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
	"github.com/heitorfr/barber-booking-service/pkg/ptr"
	"github.com/heitorfr/barber-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type mockBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
	created   *domain.Booking
}

func (m *mockBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = b
	out := *b
	out.ID = 101
	out.CreatedAt = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	out.UpdatedAt = out.CreatedAt
	return &out, nil
}

func (m *mockBookingRepo) GetByBarberWithFilter(_ context.Context, _ domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	return m.bookings, nil
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

// mockTxManager выполняет функцию без реальной транзакции
type mockTxManager struct{}

func (mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func mondaySchedule() domain.WorkScheduleConfig {
	return domain.WorkScheduleConfig{
		"monday": {
			IsWorking:    ptr.Ptr(true),
			MorningStart: ptr.Ptr("09:00"),
			MorningEnd:   ptr.Ptr("13:00"),
		},
	}
}

func testBarber() *domain.Barber {
	return &domain.Barber{ID: 7, Name: "Rafael", IsActive: true, Schedule: mondaySchedule()}
}

func testService() *domain.Service {
	return &domain.Service{ID: 3, Name: "Corte masculino", Price: 60, DurationMinutes: 30, IsActive: true}
}

func newTestUseCase(br *mockBookingRepo, sr *mockStaffRepo, now time.Time) *UseCase {
	uc := NewUseCase(availability.NewEngine(nopLogger{}, 30), br, sr, mockTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:   1,
		BarberID:   7,
		ServiceID:  3,
		Date:       time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), // понедельник
		StartTime:  types.TimeString("10:00"),
		ClientName: "João Silva",
	}
}

func TestExecute_Success(t *testing.T) {
	br := &mockBookingRepo{}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Corte masculino", resp.ServiceName)
	assert.Equal(t, float64(60), resp.ServicePrice)

	require.NotNil(t, br.created)
	assert.Equal(t, 600, br.created.StartMinute)
	assert.Equal(t, 630, br.created.EndMinute)
}

func TestExecute_ConflictWithExistingBooking(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	br := &mockBookingRepo{bookings: []*domain.Booking{
		{
			BarberID:        7,
			BookingDate:     date,
			StartMinute:     600,
			EndMinute:       630,
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, availability.ErrSlotConflict)

	var conflict *availability.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 600, conflict.StartMinute)
	assert.Equal(t, 630, conflict.EndMinute)
	assert.Nil(t, br.created)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	br := &mockBookingRepo{bookings: []*domain.Booking{
		{
			BarberID:        7,
			BookingDate:     date,
			StartMinute:     600,
			EndMinute:       630,
			DurationMinutes: 30,
			Status:          domain.StatusCancelledByClient,
		},
	}}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_UniqueViolationMapsToConflict(t *testing.T) {
	// Конкурентная вставка, пойманная уникальным индексом после
	// успешной in-memory проверки
	br := &mockBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, availability.ErrSlotConflict)

	var conflict *availability.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 600, conflict.StartMinute)
}

func TestExecute_BarberNotFound(t *testing.T) {
	sr := &mockStaffRepo{barberErr: staffRepo.ErrBarberNotFound}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_BarberInactive(t *testing.T) {
	barber := testBarber()
	barber.IsActive = false
	sr := &mockStaffRepo{barber: barber, service: testService()}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBarberInactive)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	sr := &mockStaffRepo{barber: testBarber(), serviceErr: staffRepo.ErrServiceNotFound}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DayClosed(t *testing.T) {
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	req := validRequest()
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) // вторник, в расписании нет

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_OffGridTime(t *testing.T) {
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	req := validRequest()
	req.StartTime = types.TimeString("10:15")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_SlotBeyondWorkdayEnd(t *testing.T) {
	// 12:45+30 не помещается до 13:00, кандидат не генерируется
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	req := validRequest()
	req.StartTime = types.TimeString("12:45")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_PastDate(t *testing.T) {
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PastTimeToday(t *testing.T) {
	// Сейчас 10:30 того же дня, слот 10:00 уже прошел
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(&mockBookingRepo{}, sr, time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPastTime)
}

func TestExecute_ZeroDurationServiceFallsBackToDefault(t *testing.T) {
	service := testService()
	service.DurationMinutes = 0
	br := &mockBookingRepo{}
	sr := &mockStaffRepo{barber: testBarber(), service: service}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockStaffRepo{}, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero client id", func(r *Request) { r.ClientID = 0 }},
		{"negative barber id", func(r *Request) { r.BarberID = -1 }},
		{"zero service id", func(r *Request) { r.ServiceID = 0 }},
		{"empty date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "10am" }},
		{"empty client name", func(r *Request) { r.ClientName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_StorageFailureOnCreate(t *testing.T) {
	br := &mockBookingRepo{createErr: errors.New("connection reset")}
	sr := &mockStaffRepo{barber: testBarber(), service: testService()}
	uc := newTestUseCase(br, sr, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStorage)
}
