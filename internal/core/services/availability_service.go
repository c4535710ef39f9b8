package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"github.com/medisched/booking-slots-engine/internal/core/services/slotengine"
	"github.com/medisched/booking-slots-engine/internal/utils"
)

// AvailabilityService считает итоговый список слотов на дату:
// расписание -> генерация -> наложение записей -> лимит пациентов.
// Пересчет идемпотентен и без побочных эффектов, безопасно гонять
// на каждое обновление данных.
type AvailabilityService struct {
	schedules    out.ScheduleStorePort
	appointments out.AppointmentStorePort
	cache        out.SlotCachePort
	logger       out.LoggerPort
	location     *time.Location
}

func NewAvailabilityService(
	schedules out.ScheduleStorePort,
	appointments out.AppointmentStorePort,
	cache out.SlotCachePort,
	logger out.LoggerPort,
	location *time.Location,
) *AvailabilityService {
	return &AvailabilityService{
		schedules:    schedules,
		appointments: appointments,
		cache:        cache,
		logger:       logger.WithModule("AvailabilityService"),
		location:     location,
	}
}

func (s *AvailabilityService) DaySlots(ctx context.Context, doctorID, date string) ([]domain.TimeSlot, error) {
	s.logger.Debug("slots.compute.started", out.LogFields{
		"doctorId": doctorID,
		"date":     date,
	})

	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}

	if s.cache != nil {
		if slots, exists := s.cache.GetSlots(ctx, doctorID, date); exists {
			s.logger.Debug("slots.compute.cache.hit", out.LogFields{
				"doctorId":   doctorID,
				"date":       date,
				"slotsCount": len(slots),
			})
			return slots, nil
		}
	}

	schedule, err := s.schedules.GetSchedule(ctx, doctorID)
	if err != nil {
		s.logger.Error("slots.compute.schedule.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	slots, err := slotengine.GenerateDaySlots(schedule, date)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		s.logger.Error("slots.compute.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"date":     date,
			"error":    err.Error(),
		})
		return nil, err
	}

	slots = slotengine.ApplyBookings(slots, appointments, date, slotengine.MaxPatientsFor(schedule, day))

	if s.cache != nil {
		s.cache.StoreSlots(ctx, doctorID, date, slots)
	}

	s.logger.Debug("slots.compute.finished", out.LogFields{
		"doctorId":   doctorID,
		"date":       date,
		"slotsCount": len(slots),
	})

	return slots, nil
}

// RangeSlots считает слоты на каждый день диапазона, дни параллельно.
func (s *AvailabilityService) RangeSlots(ctx context.Context, doctorID, from, to string) (map[string][]domain.TimeSlot, error) {
	dates, err := utils.DatesBetween(from, to)
	if err != nil {
		return nil, domain.NewValidationError("range", err.Error())
	}

	result := make(map[string][]domain.TimeSlot)
	var mu sync.Mutex
	var wg sync.WaitGroup
	errCh := make(chan error, len(dates))

	for _, d := range dates {
		wg.Add(1)
		go func(date string) {
			defer wg.Done()

			slots, err := s.DaySlots(ctx, doctorID, date)
			if err != nil {
				errCh <- fmt.Errorf("slots for %s: %w", date, err)
				return
			}

			mu.Lock()
			result[date] = slots
			mu.Unlock()
		}(d)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *AvailabilityService) InvalidateDoctorSlots(ctx context.Context, doctorID string) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateDoctor(ctx, doctorID)
	s.logger.Debug("slots.cache.invalidated", out.LogFields{
		"doctorId": doctorID,
	})
}
