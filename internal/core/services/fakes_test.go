package services

import (
	"context"
	"sync"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
)

// Простые in-memory реализации выходных портов для тестов сервисов.

type fakeLogger struct{}

func (l *fakeLogger) Debug(event string, fields out.LogFields) {}
func (l *fakeLogger) Info(event string, fields out.LogFields)  {}
func (l *fakeLogger) Warn(event string, fields out.LogFields)  {}
func (l *fakeLogger) Error(event string, fields out.LogFields) {}
func (l *fakeLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l
}
func (l *fakeLogger) WithModule(module string) out.LoggerPort {
	return l
}

type fakeScheduleStore struct {
	schedules map[string]*domain.DoctorSchedule
	saveErr   error
	saved     []*domain.DoctorSchedule
}

func newFakeScheduleStore(schedules ...*domain.DoctorSchedule) *fakeScheduleStore {
	store := &fakeScheduleStore{schedules: make(map[string]*domain.DoctorSchedule)}
	for _, s := range schedules {
		store.schedules[s.DoctorID] = s
	}
	return store
}

func (s *fakeScheduleStore) GetSchedule(ctx context.Context, doctorID string) (*domain.DoctorSchedule, error) {
	schedule, ok := s.schedules[doctorID]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	return schedule, nil
}

func (s *fakeScheduleStore) SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.schedules[schedule.DoctorID] = schedule
	s.saved = append(s.saved, schedule)
	return nil
}

type fakeAppointmentStore struct {
	appointments []domain.AppointmentRecord
	updateErr    error
	patches      []domain.AppointmentPatch
}

func newFakeAppointmentStore(appointments ...domain.AppointmentRecord) *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: appointments}
}

func (s *fakeAppointmentStore) GetAppointment(ctx context.Context, appointmentID string) (*domain.AppointmentRecord, error) {
	for i := range s.appointments {
		if s.appointments[i].ID == appointmentID {
			record := s.appointments[i]
			return &record, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (s *fakeAppointmentStore) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]domain.AppointmentRecord, error) {
	var result []domain.AppointmentRecord
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *fakeAppointmentStore) ListByPatient(ctx context.Context, patientID string) ([]domain.AppointmentRecord, error) {
	var result []domain.AppointmentRecord
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *fakeAppointmentStore) ListActiveForDates(ctx context.Context, dates []string) ([]domain.AppointmentRecord, error) {
	wanted := make(map[string]bool, len(dates))
	for _, d := range dates {
		wanted[d] = true
	}
	var result []domain.AppointmentRecord
	for _, a := range s.appointments {
		if wanted[a.Date] && a.IsActive() {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *fakeAppointmentStore) CreateAppointment(ctx context.Context, appointment *domain.AppointmentRecord) error {
	s.appointments = append(s.appointments, *appointment)
	return nil
}

func (s *fakeAppointmentStore) UpdateAppointment(ctx context.Context, appointmentID string, patch domain.AppointmentPatch) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.appointments {
		if s.appointments[i].ID != appointmentID {
			continue
		}
		a := &s.appointments[i]
		if patch.Date != nil {
			a.Date = *patch.Date
		}
		if patch.Time != nil {
			a.Time = *patch.Time
		}
		if patch.Status != nil {
			a.Status = *patch.Status
		}
		if patch.PaymentStatus != nil {
			a.PaymentStatus = *patch.PaymentStatus
		}
		if patch.CancelReason != nil {
			a.CancelReason = *patch.CancelReason
		}
		if patch.Reminders != nil {
			a.Reminders = *patch.Reminders
		}
		s.patches = append(s.patches, patch)
		return nil
	}
	return domain.ErrAppointmentNotFound
}

func (s *fakeAppointmentStore) mustGet(appointmentID string) domain.AppointmentRecord {
	for _, a := range s.appointments {
		if a.ID == appointmentID {
			return a
		}
	}
	panic("appointment not found: " + appointmentID)
}

type fakeSlotCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.TimeSlot
	hits        int
	stores      int
	invalidated []string
}

func newFakeSlotCache() *fakeSlotCache {
	return &fakeSlotCache{entries: make(map[string][]domain.TimeSlot)}
}

func (c *fakeSlotCache) GetSlots(ctx context.Context, doctorID, date string) ([]domain.TimeSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[doctorID+"/"+date]
	if ok {
		c.hits++
	}
	return slots, ok
}

func (c *fakeSlotCache) StoreSlots(ctx context.Context, doctorID, date string, slots []domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[doctorID+"/"+date] = slots
	c.stores++
}

func (c *fakeSlotCache) InvalidateDoctor(ctx context.Context, doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, doctorID)
	for key := range c.entries {
		if len(key) > len(doctorID) && key[:len(doctorID)+1] == doctorID+"/" {
			delete(c.entries, key)
		}
	}
}

func (c *fakeSlotCache) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]domain.TimeSlot)
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []domain.Notification
	err           error
}

func (n *fakeNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
	return nil
}

func (n *fakeNotifier) byKind(kind domain.NotificationKind) []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var result []domain.Notification
	for _, notification := range n.notifications {
		if notification.Kind == kind {
			result = append(result, notification)
		}
	}
	return result
}
