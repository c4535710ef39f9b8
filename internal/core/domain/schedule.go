package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type Weekday string

const (
	WeekdayMon Weekday = "mon"
	WeekdayTue Weekday = "tue"
	WeekdayWed Weekday = "wed"
	WeekdayThu Weekday = "thu"
	WeekdayFri Weekday = "fri"
	WeekdaySat Weekday = "sat"
	WeekdaySun Weekday = "sun"
)

// Соответствие дней недели стандартной библиотеки нашим ключам
var WeekdayMap = map[time.Weekday]Weekday{
	time.Monday:    WeekdayMon,
	time.Tuesday:   WeekdayTue,
	time.Wednesday: WeekdayWed,
	time.Thursday:  WeekdayThu,
	time.Friday:    WeekdayFri,
	time.Saturday:  WeekdaySat,
	time.Sunday:    WeekdaySun,
}

// WeeklyDay - повторяющееся правило доступности для одного дня недели.
// Start и End в формате "HH:MM", MaxPatients - дневной лимит пациентов
// для окна (nil - без лимита).
type WeeklyDay struct {
	Enabled     bool   `json:"enabled" bson:"enabled"`
	Start       string `json:"start" bson:"start" validate:"omitempty,len=5"`
	End         string `json:"end" bson:"end" validate:"omitempty,len=5"`
	MaxPatients *int   `json:"maxPatients,omitempty" bson:"maxPatients,omitempty"`
}

type WeeklySchedule map[Weekday]WeeklyDay

// ExceptionDay - переопределение недельного правила на конкретную дату.
// Если Closed = true, день полностью закрыт независимо от недельного правила.
// Иначе Start/End заменяют окно недельного правила.
type ExceptionDay struct {
	Date   string `json:"date" bson:"date" validate:"required"`
	Closed bool   `json:"closed" bson:"closed"`
	Start  string `json:"start,omitempty" bson:"start,omitempty"`
	End    string `json:"end,omitempty" bson:"end,omitempty"`
}

const DefaultSlotMinutes = 10

// DoctorSchedule - агрегат расписания врача, один документ на врача.
// Exceptions хранятся по дате, не больше одного на дату (last-write-wins).
type DoctorSchedule struct {
	DoctorID    string         `json:"doctorId" bson:"_id" validate:"required"`
	Weekly      WeeklySchedule `json:"weekly" bson:"weekly"`
	Exceptions  []ExceptionDay `json:"exceptions,omitempty" bson:"exceptions,omitempty"`
	SlotMinutes int            `json:"slotMinutes" bson:"slotMinutes"`
	Timezone    string         `json:"timezone,omitempty" bson:"timezone,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}

var scheduleValidator = validator.New()

// Validate проверяет структурную корректность расписания.
// Возвращает ValidationError при первом нарушении.
func (s *DoctorSchedule) Validate() error {
	if err := scheduleValidator.Struct(s); err != nil {
		return NewValidationError("schedule", err.Error())
	}

	if s.SlotMinutes <= 0 {
		return NewValidationError("slotMinutes", fmt.Sprintf("must be positive, got %d", s.SlotMinutes))
	}

	for weekday, day := range s.Weekly {
		if _, ok := weekdayIndex[weekday]; !ok {
			return NewValidationError("weekly", fmt.Sprintf("unknown weekday key %q", weekday))
		}
		if !day.Enabled {
			continue
		}
		start, err := ParseClock(day.Start)
		if err != nil {
			return NewValidationError("weekly."+string(weekday)+".start", err.Error())
		}
		end, err := ParseClock(day.End)
		if err != nil {
			return NewValidationError("weekly."+string(weekday)+".end", err.Error())
		}
		if start >= end {
			return NewValidationError("weekly."+string(weekday), fmt.Sprintf("start %q must be before end %q", day.Start, day.End))
		}
		if day.MaxPatients != nil && *day.MaxPatients < 0 {
			return NewValidationError("weekly."+string(weekday)+".maxPatients", "must not be negative")
		}
	}

	for _, exc := range s.Exceptions {
		if _, err := ParseDate(exc.Date); err != nil {
			return NewValidationError("exceptions.date", err.Error())
		}
		if exc.Closed {
			continue
		}
		start, err := ParseClock(exc.Start)
		if err != nil {
			return NewValidationError("exceptions."+exc.Date+".start", err.Error())
		}
		end, err := ParseClock(exc.End)
		if err != nil {
			return NewValidationError("exceptions."+exc.Date+".end", err.Error())
		}
		if start >= end {
			return NewValidationError("exceptions."+exc.Date, fmt.Sprintf("start %q must be before end %q", exc.Start, exc.End))
		}
	}

	return nil
}

var weekdayIndex = map[Weekday]struct{}{
	WeekdayMon: {}, WeekdayTue: {}, WeekdayWed: {}, WeekdayThu: {},
	WeekdayFri: {}, WeekdaySat: {}, WeekdaySun: {},
}

// ExceptionFor возвращает исключение на дату, если оно есть.
// При дубликатах дат действует последнее - так же ведет себя
// save с заменой всего документа.
func (s *DoctorSchedule) ExceptionFor(date string) (ExceptionDay, bool) {
	var found ExceptionDay
	var ok bool
	for _, exc := range s.Exceptions {
		if exc.Date == date {
			found = exc
			ok = true
		}
	}
	return found, ok
}

// EffectiveSlotMinutes возвращает длительность слота с учетом дефолта.
func (s *DoctorSchedule) EffectiveSlotMinutes() int {
	if s.SlotMinutes > 0 {
		return s.SlotMinutes
	}
	return DefaultSlotMinutes
}
