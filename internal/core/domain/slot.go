package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeSlot - эфемерный слот записи, пересчитывается на каждый запрос.
// Minute - нормализованный ключ (минуты от полуночи), по нему идет
// сопоставление с записями. Label - представление для UI ("10:10 AM").
type TimeSlot struct {
	Minute int    `json:"minute"`
	Label  string `json:"time"`
	Booked bool   `json:"booked"`
}

const DateLayout = "2006-01-02"

// ParseDate парсит календарную дату "YYYY-MM-DD".
func ParseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return parsed, nil
}

// ParseClock парсит время "HH:MM" в минуты от полуночи.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hours in %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", clock)
	}
	return hours*60 + minutes, nil
}

// FormatSlotLabel форматирует минуты от полуночи в 12-часовую метку.
// Часы 0 и 12 оба отображаются как "12", минуты всегда с нулем.
func FormatSlotLabel(minute int) string {
	hours := minute / 60
	minutes := minute % 60

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}

	hours12 := hours % 12
	if hours12 == 0 {
		hours12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", hours12, minutes, period)
}

// ParseSlotLabel парсит метку времени записи обратно в минуты от полуночи.
// Принимает оба формата: "10:10 AM" и "22:10". Устаревшие метки в других
// форматах не сопоставляются ни с одним слотом (слот остается свободным).
func ParseSlotLabel(label string) (int, error) {
	trimmed := strings.TrimSpace(label)

	fields := strings.Fields(trimmed)
	switch len(fields) {
	case 1:
		// 24-часовой формат без AM/PM
		return ParseClock(fields[0])
	case 2:
		minute, err := ParseClock(fields[0])
		if err != nil {
			return 0, err
		}
		hours12 := minute / 60
		if hours12 < 1 || hours12 > 12 {
			return 0, fmt.Errorf("invalid 12-hour label %q", label)
		}
		minutes := minute % 60
		switch strings.ToUpper(fields[1]) {
		case "AM":
			if hours12 == 12 {
				hours12 = 0
			}
		case "PM":
			if hours12 != 12 {
				hours12 += 12
			}
		default:
			return 0, fmt.Errorf("invalid period in label %q", label)
		}
		return hours12*60 + minutes, nil
	default:
		return 0, fmt.Errorf("invalid time label %q", label)
	}
}
