package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ReminderFlags - отметки об уже отправленных напоминаниях,
// чтобы cron-обход не рассылал дубликаты.
type ReminderFlags struct {
	Sent24h bool `json:"sent24h" bson:"sent24h"`
	Sent2h  bool `json:"sent2h" bson:"sent2h"`
}

// AppointmentRecord - запись на прием. Date в формате "YYYY-MM-DD",
// Time - метка слота в том же формате, что и TimeSlot.Label.
type AppointmentRecord struct {
	ID            string            `json:"id" bson:"_id"`
	DoctorID      string            `json:"doctorId" bson:"doctorId"`
	PatientID     string            `json:"patientId" bson:"patientId"`
	Date          string            `json:"date" bson:"date"`
	Time          string            `json:"time" bson:"time"`
	Status        AppointmentStatus `json:"status" bson:"status"`
	PaymentMethod PaymentMethod     `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus PaymentStatus     `json:"paymentStatus" bson:"paymentStatus"`
	Fee           float64           `json:"fee" bson:"fee"`
	CancelReason  string            `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`
	Reminders     ReminderFlags     `json:"reminders" bson:"reminders"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// IsActive - запись еще ждет приема (не завершена и не отменена).
func (a *AppointmentRecord) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// StartTime возвращает абсолютное время начала приема в указанной таймзоне.
func (a *AppointmentRecord) StartTime(loc *time.Location) (time.Time, error) {
	day, err := ParseDate(a.Date)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := ParseSlotLabel(a.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minute/60, minute%60, 0, 0, loc), nil
}

// AppointmentPatch - частичное обновление записи. Нулевые указатели
// не трогают соответствующие поля.
type AppointmentPatch struct {
	Date          *string            `bson:"date,omitempty"`
	Time          *string            `bson:"time,omitempty"`
	Status        *AppointmentStatus `bson:"status,omitempty"`
	PaymentStatus *PaymentStatus     `bson:"paymentStatus,omitempty"`
	CancelReason  *string            `bson:"cancelReason,omitempty"`
	Reminders     *ReminderFlags     `bson:"reminders,omitempty"`
}
