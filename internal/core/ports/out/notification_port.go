package out

import (
	"context"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
)

type NotificationPort interface {
	// Fire-and-forget: вызывающая сторона логирует ошибку и продолжает,
	// бизнес-операция из-за неотправленного уведомления не откатывается
	Notify(ctx context.Context, notification domain.Notification) error
}
