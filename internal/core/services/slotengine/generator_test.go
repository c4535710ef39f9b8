package slotengine

import (
	"testing"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 - понедельник
const (
	monday  = "2024-01-01"
	tuesday = "2024-01-02"
)

func intPtr(v int) *int { return &v }

func mondaySchedule(start, end string, slotMinutes int) *domain.DoctorSchedule {
	return &domain.DoctorSchedule{
		DoctorID: "doc-1",
		Weekly: domain.WeeklySchedule{
			domain.WeekdayMon: {Enabled: true, Start: start, End: end},
		},
		SlotMinutes: slotMinutes,
	}
}

func labels(slots []domain.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label
	}
	return out
}

func TestGenerateDaySlotsBasic(t *testing.T) {
	slots, err := GenerateDaySlots(mondaySchedule("10:00", "10:30", 10), monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM", "10:10 AM", "10:20 AM"}, labels(slots))
	for _, s := range slots {
		assert.False(t, s.Booked)
	}
}

func TestGenerateDaySlotsDisabledWeekday(t *testing.T) {
	// Правило только на понедельник - вторник пуст
	slots, err := GenerateDaySlots(mondaySchedule("10:00", "12:00", 10), tuesday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDaySlotsMissingWeekdayRule(t *testing.T) {
	schedule := &domain.DoctorSchedule{
		DoctorID:    "doc-1",
		Weekly:      domain.WeeklySchedule{},
		SlotMinutes: 10,
	}
	slots, err := GenerateDaySlots(schedule, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDaySlotsCount(t *testing.T) {
	tests := []struct {
		start, end  string
		slotMinutes int
		wantCount   int
	}{
		{"09:00", "17:00", 10, 48},
		{"09:00", "17:00", 30, 16},
		{"10:00", "10:30", 10, 3},
		{"10:00", "10:25", 10, 2}, // неполный хвост отбрасывается
		{"10:00", "10:09", 10, 0},
		{"00:00", "23:59", 60, 23},
	}

	for _, tt := range tests {
		slots, err := GenerateDaySlots(mondaySchedule(tt.start, tt.end, tt.slotMinutes), monday)
		require.NoError(t, err)
		assert.Len(t, slots, tt.wantCount, "%s-%s/%d", tt.start, tt.end, tt.slotMinutes)
	}
}

func TestGenerateDaySlotsOrderedAndUnique(t *testing.T) {
	slots, err := GenerateDaySlots(mondaySchedule("08:00", "20:00", 15), monday)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for i, slot := range slots {
		assert.Equal(t, domain.FormatSlotLabel(slot.Minute), slot.Label)
		if i > 0 {
			assert.Greater(t, slot.Minute, slots[i-1].Minute)
		}
		_, dup := seen[slot.Label]
		assert.False(t, dup, "duplicate label %s", slot.Label)
		seen[slot.Label] = struct{}{}
	}
}

func TestGenerateDaySlotsStartEqualsEnd(t *testing.T) {
	schedule := mondaySchedule("10:00", "10:00", 10)
	slots, err := GenerateDaySlots(schedule, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDaySlotsClosedException(t *testing.T) {
	schedule := mondaySchedule("10:00", "12:00", 10)
	schedule.Exceptions = []domain.ExceptionDay{{Date: monday, Closed: true}}

	slots, err := GenerateDaySlots(schedule, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateDaySlotsExceptionOverridesWindow(t *testing.T) {
	schedule := mondaySchedule("10:00", "12:00", 30)
	schedule.Exceptions = []domain.ExceptionDay{{Date: monday, Start: "14:00", End: "15:00"}}

	slots, err := GenerateDaySlots(schedule, monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"2:00 PM", "2:30 PM"}, labels(slots))
}

func TestGenerateDaySlotsExceptionOpensClosedDay(t *testing.T) {
	// Исключение перекрывает недельное правило в обе стороны
	schedule := mondaySchedule("10:00", "12:00", 30)
	schedule.Exceptions = []domain.ExceptionDay{{Date: tuesday, Start: "09:00", End: "10:00"}}

	slots, err := GenerateDaySlots(schedule, tuesday)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "9:30 AM"}, labels(slots))
}

func TestGenerateDaySlotsExceptionOnOtherDateIgnored(t *testing.T) {
	schedule := mondaySchedule("10:00", "10:30", 10)
	schedule.Exceptions = []domain.ExceptionDay{{Date: "2024-01-08", Closed: true}}

	slots, err := GenerateDaySlots(schedule, monday)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestGenerateDaySlotsDefaultSlotMinutes(t *testing.T) {
	schedule := mondaySchedule("10:00", "11:00", 0)
	slots, err := GenerateDaySlots(schedule, monday)
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestGenerateDaySlotsInvalidDate(t *testing.T) {
	_, err := GenerateDaySlots(mondaySchedule("10:00", "11:00", 10), "01.01.2024")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestMaxPatientsForComesFromWeeklyRule(t *testing.T) {
	schedule := mondaySchedule("10:00", "12:00", 10)
	day := schedule.Weekly[domain.WeekdayMon]
	day.MaxPatients = intPtr(2)
	schedule.Weekly[domain.WeekdayMon] = day
	// Исключение меняет окно, лимит остается недельным
	schedule.Exceptions = []domain.ExceptionDay{{Date: monday, Start: "14:00", End: "16:00"}}

	parsed, err := domain.ParseDate(monday)
	require.NoError(t, err)

	maxPatients := MaxPatientsFor(schedule, parsed)
	require.NotNil(t, maxPatients)
	assert.Equal(t, 2, *maxPatients)
}
