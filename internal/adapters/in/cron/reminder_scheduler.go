package cron

import (
	"context"

	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"github.com/medisched/booking-slots-engine/internal/core/services"
	"github.com/robfig/cron/v3"
)

// ReminderScheduler периодически запускает обход напоминаний.
// Расписание переживает рестарт процесса, идемпотентность
// обеспечивает сам обход.
type ReminderScheduler struct {
	cron      *cron.Cron
	reminders *services.ReminderService
	cfg       *config.Config
	logger    out.LoggerPort
}

func NewReminderScheduler(reminders *services.ReminderService, cfg *config.Config, logger out.LoggerPort) *ReminderScheduler {
	return &ReminderScheduler{
		cron:      cron.New(),
		reminders: reminders,
		cfg:       cfg,
		logger:    logger.WithModule("ReminderScheduler"),
	}
}

func (s *ReminderScheduler) Start(ctx context.Context) error {
	if !s.cfg.Reminders.Enabled {
		s.logger.Info("reminders.disabled", out.LogFields{
			"message": "Reminder sweep is disabled",
		})
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Reminders.CronSpec, func() {
		if err := s.reminders.Sweep(ctx); err != nil {
			s.logger.Error("reminders.sweep.failed", out.LogFields{
				"error": err.Error(),
			})
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("reminders.scheduler.started", out.LogFields{
		"spec": s.cfg.Reminders.CronSpec,
	})
	return nil
}

func (s *ReminderScheduler) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
