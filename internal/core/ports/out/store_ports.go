package out

import (
	"context"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
)

type ScheduleStorePort interface {
	// Возвращает domain.ErrScheduleNotFound, если расписания нет
	GetSchedule(ctx context.Context, doctorID string) (*domain.DoctorSchedule, error)

	// Полная замена документа расписания (replace-or-merge save)
	SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error
}

type AppointmentStorePort interface {
	// Возвращает domain.ErrAppointmentNotFound, если записи нет
	GetAppointment(ctx context.Context, appointmentID string) (*domain.AppointmentRecord, error)

	// Записи врача на одну дату
	ListByDoctorDate(ctx context.Context, doctorID, date string) ([]domain.AppointmentRecord, error)

	// Записи пациента
	ListByPatient(ctx context.Context, patientID string) ([]domain.AppointmentRecord, error)

	// Неотмененные записи на любую из дат, для cron-обхода напоминаний
	ListActiveForDates(ctx context.Context, dates []string) ([]domain.AppointmentRecord, error)

	CreateAppointment(ctx context.Context, appointment *domain.AppointmentRecord) error

	// Частичное обновление, атомарное на уровне документа
	UpdateAppointment(ctx context.Context, appointmentID string, patch domain.AppointmentPatch) error
}
