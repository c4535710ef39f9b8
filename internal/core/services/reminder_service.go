package services

import (
	"context"
	"fmt"
	"time"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"github.com/medisched/booking-slots-engine/internal/core/services/slotengine"
	"github.com/medisched/booking-slots-engine/internal/utils"
)

// Пороги напоминаний в часах до начала приема. Численно совпадают
// с порогами возврата, но это независимые политики.
const (
	Reminder24hThreshold = 24.0
	Reminder2hThreshold  = 2.0
)

// ReminderService рассылает напоминания на порогах T-24ч и T-2ч.
// Вызывается cron-обходом; идемпотентность на флагах Reminders в записи,
// поэтому повторный обход и рестарт процесса не дают дубликатов.
type ReminderService struct {
	appointments out.AppointmentStorePort
	notifier     out.NotificationPort
	logger       out.LoggerPort
	location     *time.Location
	nowFn        func() time.Time
}

func NewReminderService(
	appointments out.AppointmentStorePort,
	notifier out.NotificationPort,
	logger out.LoggerPort,
	location *time.Location,
) *ReminderService {
	return &ReminderService{
		appointments: appointments,
		notifier:     notifier,
		logger:       logger.WithModule("ReminderService"),
		location:     location,
		nowFn:        time.Now,
	}
}

// WithClock подменяет источник времени. Для тестов.
func (s *ReminderService) WithClock(nowFn func() time.Time) *ReminderService {
	s.nowFn = nowFn
	return s
}

func (s *ReminderService) Sweep(ctx context.Context) error {
	now := s.nowFn().In(s.location)

	// Сегодня и завтра покрывают оба порога
	dates := []string{
		utils.StartCurrentDay(now).Format(domain.DateLayout),
		utils.StartNextDay(now).Format(domain.DateLayout),
	}

	appointments, err := s.appointments.ListActiveForDates(ctx, dates)
	if err != nil {
		s.logger.Error("reminders.sweep.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}

	sent := 0
	for i := range appointments {
		appointment := appointments[i]

		hours, err := slotengine.HoursUntil(&appointment, now, s.location)
		if err != nil {
			s.logger.Warn("reminders.sweep.bad_record", out.LogFields{
				"appointmentId": appointment.ID,
				"error":         err.Error(),
			})
			continue
		}
		if hours <= 0 {
			continue
		}

		flags := appointment.Reminders
		if hours <= Reminder2hThreshold && !flags.Sent2h {
			flags.Sent2h = true
			flags.Sent24h = true
		} else if hours <= Reminder24hThreshold && !flags.Sent24h {
			flags.Sent24h = true
		} else {
			continue
		}

		// Сначала помечаем, потом шлем: лучше потерянное напоминание,
		// чем дубликат при падении между шагами
		if err := s.appointments.UpdateAppointment(ctx, appointment.ID, domain.AppointmentPatch{
			Reminders: &flags,
		}); err != nil {
			s.logger.Error("reminders.sweep.mark_failed", out.LogFields{
				"appointmentId": appointment.ID,
				"error":         err.Error(),
			})
			continue
		}

		notification := domain.Notification{
			UserID:  appointment.PatientID,
			Title:   "Upcoming appointment",
			Message: fmt.Sprintf("Reminder: your appointment is on %s at %s", appointment.Date, appointment.Time),
			Kind:    domain.NotificationKindReminder,
			Payload: map[string]interface{}{"appointmentId": appointment.ID, "hoursLeft": utils.RoundHours(hours)},
		}
		if err := s.notifier.Notify(ctx, notification); err != nil {
			s.logger.Warn("reminders.sweep.notify_failed", out.LogFields{
				"appointmentId": appointment.ID,
				"error":         err.Error(),
			})
			continue
		}
		sent++
	}

	s.logger.Info("reminders.sweep.finished", out.LogFields{
		"checked": len(appointments),
		"sent":    sent,
	})

	return nil
}
