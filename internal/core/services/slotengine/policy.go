package slotengine

import (
	"fmt"
	"time"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
)

// Пороговые значения lead time в часах. Границы включаются в верхний
// уровень: ровно 24 часа - полный возврат, ровно 2 часа - половина.
const (
	RescheduleMinLeadHours = 24.0
	FullRefundLeadHours    = 24.0
	HalfRefundLeadHours    = 2.0
)

// HoursUntil - lead time от now до начала приема, в часах.
// Время передается явно, ядро не читает системные часы.
func HoursUntil(appt *domain.AppointmentRecord, now time.Time, loc *time.Location) (float64, error) {
	start, err := appt.StartTime(loc)
	if err != nil {
		return 0, domain.NewValidationError("appointment.time", err.Error())
	}
	return start.Sub(now).Hours(), nil
}

// CanModify - мягкая проверка для UI: запись активна и прием в будущем.
// Серверная проверка переноса строже, см. CheckReschedule.
func CanModify(appt *domain.AppointmentRecord, now time.Time, loc *time.Location) bool {
	if !appt.IsActive() {
		return false
	}
	start, err := appt.StartTime(loc)
	if err != nil {
		return false
	}
	return now.Before(start)
}

func checkStatusGate(appt *domain.AppointmentRecord) error {
	if !appt.IsActive() {
		return domain.NewPolicyViolation("status",
			fmt.Sprintf("appointment is %s and can no longer be changed", appt.Status))
	}
	return nil
}

// CheckReschedule - серверная проверка переноса: статус-гейт плюс жесткое
// требование lead time не меньше 24 часов.
func CheckReschedule(appt *domain.AppointmentRecord, now time.Time, loc *time.Location) error {
	if err := checkStatusGate(appt); err != nil {
		return err
	}
	hours, err := HoursUntil(appt, now, loc)
	if err != nil {
		return err
	}
	if hours < RescheduleMinLeadHours {
		return domain.NewPolicyViolation("lead-time",
			fmt.Sprintf("rescheduling requires at least %.0f hours before the appointment", RescheduleMinLeadHours))
	}
	return nil
}

// CheckCancel - проверка отмены: только статус-гейт, размер возврата
// считается отдельно по lead time.
func CheckCancel(appt *domain.AppointmentRecord) error {
	return checkStatusGate(appt)
}

// RefundAmount - возврат при отмене пациентом. Релевантен только для
// оплаченной онлайн-записи: >= 24ч - полный, >= 2ч - половина, иначе ноль.
func RefundAmount(appt *domain.AppointmentRecord, now time.Time, loc *time.Location) (float64, error) {
	if appt.PaymentMethod != domain.PaymentMethodOnline || appt.PaymentStatus != domain.PaymentStatusPaid {
		return 0, nil
	}
	hours, err := HoursUntil(appt, now, loc)
	if err != nil {
		return 0, err
	}
	switch {
	case hours >= FullRefundLeadHours:
		return appt.Fee, nil
	case hours >= HalfRefundLeadHours:
		return appt.Fee * 0.5, nil
	default:
		return 0, nil
	}
}

// RejectRefundAmount - возврат при отклонении врачом: полный возврат
// оплаченной онлайн-записи независимо от lead time. Асимметрия с отменой
// пациентом намеренная - пациент не отвечает за недоступность врача.
func RejectRefundAmount(appt *domain.AppointmentRecord) float64 {
	if appt.PaymentMethod != domain.PaymentMethodOnline || appt.PaymentStatus != domain.PaymentStatusPaid {
		return 0
	}
	return appt.Fee
}
