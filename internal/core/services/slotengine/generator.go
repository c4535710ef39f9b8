package slotengine

import (
	"time"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
)

// Window - эффективное окно доступности на дату, в минутах от полуночи.
type Window struct {
	StartMinute int
	EndMinute   int
}

// EffectiveWindow резолвит окно доступности на дату.
// Приоритет строгий: исключение на эту дату полностью перекрывает
// недельное правило (в обе стороны - может и закрыть открытый день,
// и открыть закрытый); без исключения действует недельное правило;
// без включенного правила день пустой.
func EffectiveWindow(sched *domain.DoctorSchedule, date string, day time.Time) (Window, bool, error) {
	if exc, ok := sched.ExceptionFor(date); ok {
		if exc.Closed {
			return Window{}, false, nil
		}
		return parseWindow(exc.Start, exc.End)
	}

	weekday := domain.WeekdayMap[day.Weekday()]
	rule, ok := sched.Weekly[weekday]
	if !ok || !rule.Enabled {
		return Window{}, false, nil
	}
	return parseWindow(rule.Start, rule.End)
}

func parseWindow(start, end string) (Window, bool, error) {
	startMinute, err := domain.ParseClock(start)
	if err != nil {
		return Window{}, false, domain.NewValidationError("start", err.Error())
	}
	endMinute, err := domain.ParseClock(end)
	if err != nil {
		return Window{}, false, domain.NewValidationError("end", err.Error())
	}
	return Window{StartMinute: startMinute, EndMinute: endMinute}, true, nil
}

// MaxPatientsFor возвращает дневной лимит пациентов на дату.
// Лимит всегда берется из недельного правила: исключение переопределяет
// только окно, не лимит.
func MaxPatientsFor(sched *domain.DoctorSchedule, day time.Time) *int {
	rule, ok := sched.Weekly[domain.WeekdayMap[day.Weekday()]]
	if !ok {
		return nil
	}
	return rule.MaxPatients
}

// GenerateDaySlots выдает упорядоченную последовательность слотов на дату.
// Чистая функция входов: на каждый пересчет тот же результат.
// Неполный хвостовой слот отбрасывается - предлагаются только окна
// полной длительности. Хронологический порядок - внешний контракт.
func GenerateDaySlots(sched *domain.DoctorSchedule, date string) ([]domain.TimeSlot, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}

	window, open, err := EffectiveWindow(sched, date, day)
	if err != nil {
		return nil, err
	}
	if !open {
		return []domain.TimeSlot{}, nil
	}

	slotMinutes := sched.EffectiveSlotMinutes()

	slots := make([]domain.TimeSlot, 0)
	for minute := window.StartMinute; minute+slotMinutes <= window.EndMinute; minute += slotMinutes {
		slots = append(slots, domain.TimeSlot{
			Minute: minute,
			Label:  domain.FormatSlotLabel(minute),
		})
	}

	return slots, nil
}
