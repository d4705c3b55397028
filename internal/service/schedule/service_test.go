package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heitorfr/barber-booking-service/internal/domain"
	staffRepo "github.com/heitorfr/barber-booking-service/internal/infra/storage/staff"
	"github.com/heitorfr/barber-booking-service/internal/service/schedule/models"
	"github.com/heitorfr/barber-booking-service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockStaffRepo struct {
	barber    *domain.Barber
	barberErr error
	updateErr error
	updated   domain.WorkScheduleConfig
}

func (m *mockStaffRepo) GetBarber(_ context.Context, _ int64) (*domain.Barber, error) {
	if m.barberErr != nil {
		return nil, m.barberErr
	}
	return m.barber, nil
}

func (m *mockStaffRepo) UpdateBarberSchedule(_ context.Context, _ int64, schedule domain.WorkScheduleConfig) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = schedule
	return nil
}

func validSchedule() domain.WorkScheduleConfig {
	return domain.WorkScheduleConfig{
		"monday": {
			IsWorking:      ptr.Ptr(true),
			MorningStart:   ptr.Ptr("09:00"),
			MorningEnd:     ptr.Ptr("12:00"),
			AfternoonStart: ptr.Ptr("14:00"),
			AfternoonEnd:   ptr.Ptr("18:00"),
		},
		"terça": {
			IsWorking: ptr.Ptr(false),
		},
	}
}

func TestGetSchedule(t *testing.T) {
	repo := &mockStaffRepo{barber: &domain.Barber{ID: 7, IsActive: true, Schedule: validSchedule()}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetSchedule(context.Background(), &models.GetScheduleRequest{UserID: 7, BarberID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.BarberID)
	assert.Contains(t, resp.Schedule, "monday")

	_, err = svc.GetSchedule(context.Background(), &models.GetScheduleRequest{UserID: 8, BarberID: 7})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSchedule_BarberNotFound(t *testing.T) {
	repo := &mockStaffRepo{barberErr: staffRepo.ErrBarberNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetSchedule(context.Background(), &models.GetScheduleRequest{UserID: 7, BarberID: 7})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestUpdateSchedule_Success(t *testing.T) {
	repo := &mockStaffRepo{barber: &domain.Barber{ID: 7, IsActive: true}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		UserID:   7,
		BarberID: 7,
		Schedule: validSchedule(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.BarberID)
	assert.Contains(t, repo.updated, "terça")
}

func TestUpdateSchedule_OnlySelf(t *testing.T) {
	svc := NewService(&mockStaffRepo{}, nopLogger{})

	_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		UserID:   8,
		BarberID: 7,
		Schedule: validSchedule(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateSchedule_Validation(t *testing.T) {
	svc := NewService(&mockStaffRepo{barber: &domain.Barber{ID: 7}}, nopLogger{})

	tests := []struct {
		name     string
		schedule domain.WorkScheduleConfig
	}{
		{"nil schedule", nil},
		{"unknown weekday", domain.WorkScheduleConfig{
			"someday": {IsWorking: ptr.Ptr(false)},
		}},
		{"incomplete range", domain.WorkScheduleConfig{
			"monday": {IsWorking: ptr.Ptr(true), MorningStart: ptr.Ptr("09:00")},
		}},
		{"lenient value rejected on write", domain.WorkScheduleConfig{
			"monday": {IsWorking: ptr.Ptr(true), MorningStart: ptr.Ptr("9h"), MorningEnd: ptr.Ptr("12:00")},
		}},
		{"out of range hour", domain.WorkScheduleConfig{
			"monday": {IsWorking: ptr.Ptr(true), MorningStart: ptr.Ptr("25:00"), MorningEnd: ptr.Ptr("26:00")},
		}},
		{"inverted range", domain.WorkScheduleConfig{
			"monday": {IsWorking: ptr.Ptr(true), MorningStart: ptr.Ptr("12:00"), MorningEnd: ptr.Ptr("09:00")},
		}},
		{"working day without hours", domain.WorkScheduleConfig{
			"monday": {IsWorking: ptr.Ptr(true)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
				UserID:   7,
				BarberID: 7,
				Schedule: tt.schedule,
			})
			assert.ErrorIs(t, err, ErrInvalidSchedule)
		})
	}
}

func TestUpdateSchedule_LegacyFormsAcceptedWhenStrict(t *testing.T) {
	// Legacy-формы записи часов допустимы, если значения строгие
	repo := &mockStaffRepo{barber: &domain.Barber{ID: 7}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		UserID:   7,
		BarberID: 7,
		Schedule: domain.WorkScheduleConfig{
			"saturday": {IsWorking: ptr.Ptr(true), StartTime: ptr.Ptr("10:00"), EndTime: ptr.Ptr("14:00")},
		},
	})
	assert.NoError(t, err)
}
