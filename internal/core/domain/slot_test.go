package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSlotLabel(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "12:00 AM"},
		{5, "12:05 AM"},
		{600, "10:00 AM"},
		{610, "10:10 AM"},
		{720, "12:00 PM"},
		{725, "12:05 PM"},
		{750, "12:30 PM"},
		{810, "1:30 PM"},
		{1430, "11:50 PM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSlotLabel(tt.minute))
	}
}

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"12:00 AM", 0},
		{"12:05 am", 5},
		{"10:10 AM", 610},
		{"12:00 PM", 720},
		{"1:30 PM", 810},
		{"11:50 PM", 1430},
		{"22:10", 1330},
		{"00:00", 0},
		{" 10:10 AM ", 610},
	}

	for _, tt := range tests {
		got, err := ParseSlotLabel(tt.label)
		require.NoError(t, err, "label %q", tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestParseSlotLabelRoundTrip(t *testing.T) {
	for minute := 0; minute < 24*60; minute += 10 {
		got, err := ParseSlotLabel(FormatSlotLabel(minute))
		require.NoError(t, err)
		require.Equal(t, minute, got)
	}
}

func TestParseSlotLabelRejectsLegacyFormats(t *testing.T) {
	for _, label := range []string{"", "10.10", "25:00", "10:70", "13:00 PM", "0:30 AM", "10:10 A.M.", "morning"} {
		_, err := ParseSlotLabel(label)
		assert.Error(t, err, "label %q", label)
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, got)

	for _, clock := range []string{"9", "24:00", "12:60", "ab:cd", "12:30:00"} {
		_, err := ParseClock(clock)
		assert.Error(t, err, "clock %q", clock)
	}
}
