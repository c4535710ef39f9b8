package domain

import "time"

type NotificationKind string

const (
	NotificationKindAppointment NotificationKind = "appointment"
	NotificationKindPayment     NotificationKind = "payment"
	NotificationKindReminder    NotificationKind = "reminder"
)

// Notification - событие для пользователя. Со стороны ядра отправка
// fire-and-forget: неудача доставки не откатывает бизнес-операцию.
type Notification struct {
	ID        string                 `json:"id" bson:"_id"`
	UserID    string                 `json:"userId" bson:"userId"`
	Title     string                 `json:"title" bson:"title"`
	Message   string                 `json:"message" bson:"message"`
	Kind      NotificationKind       `json:"kind" bson:"kind"`
	Payload   map[string]interface{} `json:"payload,omitempty" bson:"payload,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}
