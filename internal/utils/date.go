package utils

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// StartCurrentDay возвращает ту же дату со временем 00:00, таймзона прежняя.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает следующий день со временем 00:00.
func StartNextDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())
}

// DatesBetween возвращает последовательность дат "YYYY-MM-DD" от from
// до to включительно. Диапазон ограничен, чтобы опечатка в году не
// раскрутила генерацию на тысячи дней.
func DatesBetween(from, to string) ([]string, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q", from)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q", to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("to %q is before from %q", to, from)
	}

	const maxRangeDays = 92
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("date range longer than %d days", maxRangeDays)
	}

	var dates []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day.Format(dateLayout))
	}
	return dates, nil
}

// RoundHours округляет часы до одного знака для отображения.
func RoundHours(hours float64) float64 {
	return math.Round(hours*10) / 10
}
