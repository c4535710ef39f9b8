package slotengine

import (
	"github.com/medisched/booking-slots-engine/internal/core/domain"
)

// ApplyBookings накладывает существующие записи на сгенерированные слоты
// и применяет дневной лимит пациентов. Исходный слайс не мутируется.
//
// Шаг 1: слот занят, если неотмененная запись на эту дату нормализуется
// в ту же минуту от полуночи. Метка записи в устаревшем формате не
// нормализуется и слот остается свободным.
//
// Шаг 2: при положительном maxPatients свободными остаются только первые
// remaining = max(0, maxPatients - bookedCount) слотов в хронологическом
// порядке, остальные принудительно помечаются занятыми. Распределение
// детерминированное, строго по порядку слотов.
func ApplyBookings(slots []domain.TimeSlot, appointments []domain.AppointmentRecord, date string, maxPatients *int) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slots))
	copy(result, slots)

	bookedMinutes := make(map[int]struct{})
	for _, appt := range appointments {
		if appt.Date != date || appt.Status == domain.AppointmentStatusCancelled {
			continue
		}
		minute, err := domain.ParseSlotLabel(appt.Time)
		if err != nil {
			// Нечитаемая метка времени - запись не привязывается к слоту
			continue
		}
		bookedMinutes[minute] = struct{}{}
	}

	bookedCount := 0
	for i := range result {
		if _, taken := bookedMinutes[result[i].Minute]; taken {
			result[i].Booked = true
			bookedCount++
		}
	}

	if maxPatients == nil || *maxPatients <= 0 {
		return result
	}

	remaining := *maxPatients - bookedCount
	if remaining < 0 {
		remaining = 0
	}

	for i := range result {
		if result[i].Booked {
			continue
		}
		if remaining > 0 {
			remaining--
			continue
		}
		result[i].Booked = true
	}

	return result
}

// FindSlot возвращает слот с указанной минутой, если он есть.
func FindSlot(slots []domain.TimeSlot, minute int) (domain.TimeSlot, bool) {
	for _, slot := range slots {
		if slot.Minute == minute {
			return slot, true
		}
	}
	return domain.TimeSlot{}, false
}
