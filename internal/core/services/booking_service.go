package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/in"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"github.com/medisched/booking-slots-engine/internal/core/services/slotengine"
)

// BookingService - операции над записями и расписаниями.
// Все проверки политики идут до любой записи в хранилище (check-then-act),
// при отказе состояние не меняется. Текущее время берется через nowFn,
// чтобы проверки оставались чистыми и тестируемыми.
type BookingService struct {
	availability in.AvailabilityUseCase
	schedules    out.ScheduleStorePort
	appointments out.AppointmentStorePort
	notifier     out.NotificationPort
	logger       out.LoggerPort
	location     *time.Location
	nowFn        func() time.Time
}

func NewBookingService(
	availability in.AvailabilityUseCase,
	schedules out.ScheduleStorePort,
	appointments out.AppointmentStorePort,
	notifier out.NotificationPort,
	logger out.LoggerPort,
	location *time.Location,
) *BookingService {
	return &BookingService{
		availability: availability,
		schedules:    schedules,
		appointments: appointments,
		notifier:     notifier,
		logger:       logger.WithModule("BookingService"),
		location:     location,
		nowFn:        time.Now,
	}
}

// WithClock подменяет источник времени. Для тестов.
func (s *BookingService) WithClock(nowFn func() time.Time) *BookingService {
	s.nowFn = nowFn
	return s
}

// Book создает запись, предварительно заново выводя доступность:
// занятый или не предлагавшийся слот отклоняется до создания документа.
func (s *BookingService) Book(ctx context.Context, req in.BookRequest) (*domain.AppointmentRecord, error) {
	s.logger.Info("booking.create.started", out.LogFields{
		"doctorId":  req.DoctorID,
		"patientId": req.PatientID,
		"date":      req.Date,
		"time":      req.Time,
	})

	if req.DoctorID == "" || req.PatientID == "" {
		return nil, domain.NewValidationError("booking", "doctorId and patientId are required")
	}
	if req.Fee < 0 {
		return nil, domain.NewValidationError("fee", "must not be negative")
	}
	if req.PaymentMethod != domain.PaymentMethodCash && req.PaymentMethod != domain.PaymentMethodOnline {
		return nil, domain.NewValidationError("paymentMethod", fmt.Sprintf("unknown method %q", req.PaymentMethod))
	}
	minute, err := domain.ParseSlotLabel(req.Time)
	if err != nil {
		return nil, domain.NewValidationError("time", err.Error())
	}

	slots, err := s.availability.DaySlots(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}

	slot, offered := slotengine.FindSlot(slots, minute)
	if !offered {
		return nil, domain.NewPolicyViolation("slot", "requested time is not an offered slot")
	}
	if slot.Booked {
		return nil, domain.NewPolicyViolation("slot-taken", "requested slot is no longer available")
	}

	now := s.nowFn()
	appointment := &domain.AppointmentRecord{
		ID:            uuid.NewString(),
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		Date:          req.Date,
		Time:          domain.FormatSlotLabel(minute),
		Status:        domain.AppointmentStatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		Fee:           req.Fee,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.appointments.CreateAppointment(ctx, appointment); err != nil {
		s.logger.Error("booking.create.store_failed", out.LogFields{
			"doctorId": req.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.availability.InvalidateDoctorSlots(ctx, req.DoctorID)

	s.notify(ctx, domain.Notification{
		UserID:  appointment.DoctorID,
		Title:   "New appointment request",
		Message: fmt.Sprintf("New appointment requested for %s at %s", appointment.Date, appointment.Time),
		Kind:    domain.NotificationKindAppointment,
		Payload: map[string]interface{}{"appointmentId": appointment.ID},
	})

	s.logger.Info("booking.create.finished", out.LogFields{
		"appointmentId": appointment.ID,
	})

	return appointment, nil
}

// Reschedule переносит запись на новые дату и слот. Жесткое требование
// lead time >= 24ч, статус сбрасывается в pending на повторное
// подтверждение. Конфликт нового слота здесь не проверяется:
// вызывающая сторона обязана заново вывести доступность перед коммитом.
func (s *BookingService) Reschedule(ctx context.Context, appointmentID, date, timeLabel string) (*domain.AppointmentRecord, error) {
	s.logger.Info("booking.reschedule.started", out.LogFields{
		"appointmentId": appointmentID,
		"date":          date,
		"time":          timeLabel,
	})

	if _, err := domain.ParseDate(date); err != nil {
		return nil, domain.NewValidationError("date", err.Error())
	}
	minute, err := domain.ParseSlotLabel(timeLabel)
	if err != nil {
		return nil, domain.NewValidationError("time", err.Error())
	}

	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := slotengine.CheckReschedule(appointment, s.nowFn(), s.location); err != nil {
		return nil, err
	}

	newLabel := domain.FormatSlotLabel(minute)
	newStatus := domain.AppointmentStatusPending
	patch := domain.AppointmentPatch{
		Date:   &date,
		Time:   &newLabel,
		Status: &newStatus,
	}
	if err := s.appointments.UpdateAppointment(ctx, appointmentID, patch); err != nil {
		return nil, err
	}

	appointment.Date = date
	appointment.Time = newLabel
	appointment.Status = newStatus

	s.availability.InvalidateDoctorSlots(ctx, appointment.DoctorID)

	s.notify(ctx, domain.Notification{
		UserID:  appointment.DoctorID,
		Title:   "Appointment rescheduled",
		Message: fmt.Sprintf("Appointment moved to %s at %s and awaits re-approval", date, newLabel),
		Kind:    domain.NotificationKindAppointment,
		Payload: map[string]interface{}{"appointmentId": appointment.ID},
	})

	return appointment, nil
}

// Cancel отменяет запись по инициативе пациента с тиерным возвратом
// по lead time: >= 24ч - полный, >= 2ч - половина, меньше - без возврата.
func (s *BookingService) Cancel(ctx context.Context, appointmentID, reason string) (*domain.AppointmentRecord, error) {
	s.logger.Info("booking.cancel.started", out.LogFields{
		"appointmentId": appointmentID,
	})

	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := slotengine.CheckCancel(appointment); err != nil {
		return nil, err
	}

	refund, err := slotengine.RefundAmount(appointment, s.nowFn(), s.location)
	if err != nil {
		return nil, err
	}

	// Пациент отменяет сам - о событии извещается врач
	return s.finishCancellation(ctx, appointment, reason, refund, appointment.DoctorID)
}

// Reject - отклонение записи врачом: та же отмена, но с безусловным
// полным возвратом оплаченной онлайн-записи.
func (s *BookingService) Reject(ctx context.Context, appointmentID, reason string) (*domain.AppointmentRecord, error) {
	s.logger.Info("booking.reject.started", out.LogFields{
		"appointmentId": appointmentID,
	})

	appointment, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := slotengine.CheckCancel(appointment); err != nil {
		return nil, err
	}

	// Отклоняет врач - о событии извещается пациент
	return s.finishCancellation(ctx, appointment, reason, slotengine.RejectRefundAmount(appointment), appointment.PatientID)
}

// finishCancellation завершает отмену: counterpartyID - вторая сторона
// записи, которую нужно известить (не инициатор отмены).
func (s *BookingService) finishCancellation(ctx context.Context, appointment *domain.AppointmentRecord, reason string, refund float64, counterpartyID string) (*domain.AppointmentRecord, error) {
	cancelled := domain.AppointmentStatusCancelled
	patch := domain.AppointmentPatch{
		Status:       &cancelled,
		CancelReason: &reason,
	}
	if refund > 0 {
		refunded := domain.PaymentStatusRefunded
		patch.PaymentStatus = &refunded
	}

	if err := s.appointments.UpdateAppointment(ctx, appointment.ID, patch); err != nil {
		return nil, err
	}

	appointment.Status = cancelled
	appointment.CancelReason = reason
	if refund > 0 {
		appointment.PaymentStatus = domain.PaymentStatusRefunded
	}

	s.availability.InvalidateDoctorSlots(ctx, appointment.DoctorID)

	s.notify(ctx, domain.Notification{
		UserID:  counterpartyID,
		Title:   "Appointment cancelled",
		Message: fmt.Sprintf("Appointment on %s at %s was cancelled: %s", appointment.Date, appointment.Time, reason),
		Kind:    domain.NotificationKindAppointment,
		Payload: map[string]interface{}{"appointmentId": appointment.ID},
	})

	if refund > 0 {
		s.notify(ctx, domain.Notification{
			UserID:  appointment.PatientID,
			Title:   "Payment refunded",
			Message: fmt.Sprintf("A refund of %.2f was issued for your appointment on %s", refund, appointment.Date),
			Kind:    domain.NotificationKindPayment,
			Payload: map[string]interface{}{"appointmentId": appointment.ID, "amount": refund},
		})
	}

	s.logger.Info("booking.cancel.finished", out.LogFields{
		"appointmentId": appointment.ID,
		"refund":        refund,
	})

	return appointment, nil
}

func (s *BookingService) PatientAppointments(ctx context.Context, patientID string) ([]domain.AppointmentRecord, error) {
	if patientID == "" {
		return nil, domain.NewValidationError("patientId", "is required")
	}
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *BookingService) GetSchedule(ctx context.Context, doctorID string) (*domain.DoctorSchedule, error) {
	return s.schedules.GetSchedule(ctx, doctorID)
}

// SaveSchedule валидирует и полностью заменяет документ расписания.
func (s *BookingService) SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	schedule.UpdatedAt = s.nowFn()
	if err := s.schedules.SaveSchedule(ctx, schedule); err != nil {
		return err
	}

	s.availability.InvalidateDoctorSlots(ctx, schedule.DoctorID)

	s.logger.Info("schedule.saved", out.LogFields{
		"doctorId": schedule.DoctorID,
	})

	return nil
}

func (s *BookingService) notify(ctx context.Context, notification domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		// Уведомления fire-and-forget, операцию не откатываем
		s.logger.Warn("booking.notify.failed", out.LogFields{
			"userId": notification.UserID,
			"kind":   notification.Kind,
			"error":  err.Error(),
		})
	}
}
