package availability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heitorfr/barber-booking-service/internal/domain"
	"github.com/heitorfr/barber-booking-service/pkg/ptr"
)

func TestCheckSlot(t *testing.T) {
	booked := []domain.BookedInterval{
		{StartMinute: 540, EndMinute: 570}, // 09:00-09:30
	}

	tests := []struct {
		name     string
		start    int
		duration int
		conflict bool
	}{
		{"exact overlap", 540, 30, true},
		{"partial overlap from before", 530, 30, true},
		{"partial overlap from inside", 560, 30, true},
		{"booking contained in slot", 530, 60, true},
		{"adjacent before is not a conflict", 510, 30, false},
		{"adjacent after is not a conflict", 570, 30, false},
		{"far away", 720, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlot(tt.start, tt.duration, booked)
			if tt.conflict {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrSlotConflict))

				var conflictErr *ConflictError
				require.True(t, errors.As(err, &conflictErr))
				assert.Equal(t, 540, conflictErr.StartMinute)
				assert.Equal(t, 570, conflictErr.EndMinute)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilterSlots(t *testing.T) {
	candidates := []int{480, 510, 540, 570} // 08:00, 08:30, 09:00, 09:30
	booked := []domain.BookedInterval{
		{StartMinute: 540, EndMinute: 570}, // 09:00-09:30 занято
	}

	t.Run("conflicting candidates are removed", func(t *testing.T) {
		slots := FilterSlots(candidates, 30, booked, nil)

		require.Len(t, slots, 3)
		assert.Equal(t, 480, slots[0].StartMinute)
		assert.Equal(t, 510, slots[1].StartMinute)
		assert.Equal(t, 570, slots[2].StartMinute)
		for _, s := range slots {
			assert.True(t, s.Available)
			assert.Equal(t, domain.SlotReasonNone, s.Reason)
		}
	})

	t.Run("past candidates stay but are unavailable", func(t *testing.T) {
		slots := FilterSlots(candidates, 30, nil, ptr.Ptr(510)) // сейчас 08:30

		require.Len(t, slots, 4)
		assert.False(t, slots[0].Available) // 08:00 <= 08:30
		assert.Equal(t, domain.SlotReasonPast, slots[0].Reason)
		assert.False(t, slots[1].Available) // 08:30 <= 08:30
		assert.Equal(t, domain.SlotReasonPast, slots[1].Reason)
		assert.True(t, slots[2].Available)
		assert.True(t, slots[3].Available)
	})

	t.Run("ordering is preserved", func(t *testing.T) {
		slots := FilterSlots(candidates, 30, booked, nil)
		for i := 1; i < len(slots); i++ {
			assert.Less(t, slots[i-1].StartMinute, slots[i].StartMinute)
		}
	})

	t.Run("end minute is start plus duration", func(t *testing.T) {
		slots := FilterSlots([]int{600}, 45, nil, nil)
		require.Len(t, slots, 1)
		assert.Equal(t, 645, slots[0].EndMinute)
	})
}
