package in

import (
	"context"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
)

type AvailabilityUseCase interface {
	// Итоговый список слотов на дату, безопасный для прямого рендеринга
	DaySlots(ctx context.Context, doctorID, date string) ([]domain.TimeSlot, error)

	// Слоты на диапазон дат (календарь врача), ключ - дата
	RangeSlots(ctx context.Context, doctorID, from, to string) (map[string][]domain.TimeSlot, error)

	// Сброс кэша слотов врача при внешнем изменении данных
	InvalidateDoctorSlots(ctx context.Context, doctorID string)
}

type BookRequest struct {
	DoctorID      string
	PatientID     string
	Date          string
	Time          string
	PaymentMethod domain.PaymentMethod
	Fee           float64
}

type BookingUseCase interface {
	Book(ctx context.Context, req BookRequest) (*domain.AppointmentRecord, error)
	Reschedule(ctx context.Context, appointmentID, date, timeLabel string) (*domain.AppointmentRecord, error)
	Cancel(ctx context.Context, appointmentID, reason string) (*domain.AppointmentRecord, error)
	Reject(ctx context.Context, appointmentID, reason string) (*domain.AppointmentRecord, error)

	// История записей пациента, для экрана "мои записи"
	PatientAppointments(ctx context.Context, patientID string) ([]domain.AppointmentRecord, error)
}

type ScheduleUseCase interface {
	GetSchedule(ctx context.Context, doctorID string) (*domain.DoctorSchedule, error)
	SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error
}
