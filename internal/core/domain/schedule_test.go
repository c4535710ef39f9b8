package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func validSchedule() *DoctorSchedule {
	return &DoctorSchedule{
		DoctorID: "doc-1",
		Weekly: WeeklySchedule{
			WeekdayMon: {Enabled: true, Start: "10:00", End: "13:00", MaxPatients: intPtr(5)},
			WeekdayTue: {Enabled: false},
		},
		SlotMinutes: 10,
	}
}

func TestScheduleValidateOK(t *testing.T) {
	require.NoError(t, validSchedule().Validate())
}

func TestScheduleValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DoctorSchedule)
	}{
		{"zero slot minutes", func(s *DoctorSchedule) { s.SlotMinutes = 0 }},
		{"negative slot minutes", func(s *DoctorSchedule) { s.SlotMinutes = -5 }},
		{"missing doctor id", func(s *DoctorSchedule) { s.DoctorID = "" }},
		{"malformed start", func(s *DoctorSchedule) {
			s.Weekly[WeekdayMon] = WeeklyDay{Enabled: true, Start: "25:00", End: "13:00"}
		}},
		{"start after end", func(s *DoctorSchedule) {
			s.Weekly[WeekdayMon] = WeeklyDay{Enabled: true, Start: "14:00", End: "13:00"}
		}},
		{"start equals end", func(s *DoctorSchedule) {
			s.Weekly[WeekdayMon] = WeeklyDay{Enabled: true, Start: "13:00", End: "13:00"}
		}},
		{"negative max patients", func(s *DoctorSchedule) {
			s.Weekly[WeekdayMon] = WeeklyDay{Enabled: true, Start: "10:00", End: "13:00", MaxPatients: intPtr(-1)}
		}},
		{"unknown weekday key", func(s *DoctorSchedule) {
			s.Weekly["monday"] = WeeklyDay{Enabled: true, Start: "10:00", End: "13:00"}
		}},
		{"bad exception date", func(s *DoctorSchedule) {
			s.Exceptions = []ExceptionDay{{Date: "01/02/2024", Closed: true}}
		}},
		{"open exception without window", func(s *DoctorSchedule) {
			s.Exceptions = []ExceptionDay{{Date: "2024-01-01"}}
		}},
		{"open exception inverted window", func(s *DoctorSchedule) {
			s.Exceptions = []ExceptionDay{{Date: "2024-01-01", Start: "15:00", End: "11:00"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := validSchedule()
			tt.mutate(schedule)

			err := schedule.Validate()
			require.Error(t, err)
			assert.True(t, IsValidation(err), "want ValidationError, got %T", err)
		})
	}
}

func TestScheduleValidateDisabledDayIgnoresWindow(t *testing.T) {
	schedule := validSchedule()
	// Выключенный день может хранить мусорное окно - оно не применяется
	schedule.Weekly[WeekdayTue] = WeeklyDay{Enabled: false, Start: "zz", End: ""}
	require.NoError(t, schedule.Validate())
}

func TestExceptionForLastWriteWins(t *testing.T) {
	schedule := validSchedule()
	schedule.Exceptions = []ExceptionDay{
		{Date: "2024-01-01", Closed: true},
		{Date: "2024-01-02", Closed: true},
		{Date: "2024-01-01", Start: "11:00", End: "12:00"},
	}

	exc, ok := schedule.ExceptionFor("2024-01-01")
	require.True(t, ok)
	assert.False(t, exc.Closed)
	assert.Equal(t, "11:00", exc.Start)

	_, ok = schedule.ExceptionFor("2024-03-03")
	assert.False(t, ok)
}

func TestEffectiveSlotMinutesDefault(t *testing.T) {
	schedule := &DoctorSchedule{}
	assert.Equal(t, DefaultSlotMinutes, schedule.EffectiveSlotMinutes())

	schedule.SlotMinutes = 15
	assert.Equal(t, 15, schedule.EffectiveSlotMinutes())
}
