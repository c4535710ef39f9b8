package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartCurrentDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 17, 42, 13, 500, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), StartCurrentDay(now))
}

func TestStartNextDay(t *testing.T) {
	// Переход через конец месяца
	now := time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StartNextDay(now))
}

func TestDatesBetween(t *testing.T) {
	dates, err := DatesBetween("2024-01-30", "2024-02-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}, dates)
}

func TestDatesBetweenSingleDay(t *testing.T) {
	dates, err := DatesBetween("2024-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01"}, dates)
}

func TestDatesBetweenErrors(t *testing.T) {
	_, err := DatesBetween("2024-01-05", "2024-01-01")
	assert.Error(t, err)

	_, err = DatesBetween("01.01.2024", "2024-01-05")
	assert.Error(t, err)

	_, err = DatesBetween("2024-01-01", "2025-01-01")
	assert.Error(t, err, "слишком длинный диапазон")
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 21.7, RoundHours(21.666))
	assert.Equal(t, 2.0, RoundHours(1.96))
}
