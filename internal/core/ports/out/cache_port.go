package out

import (
	"context"

	"github.com/medisched/booking-slots-engine/internal/core/domain"
)

type SlotCachePort interface {
	// Кэширование рассчитанных слотов по (врач, дата)
	GetSlots(ctx context.Context, doctorID, date string) ([]domain.TimeSlot, bool)
	StoreSlots(ctx context.Context, doctorID, date string, slots []domain.TimeSlot)

	// Инвалидация при событиях изменения записей и расписаний
	InvalidateDoctor(ctx context.Context, doctorID string)
	InvalidateAll(ctx context.Context)
}
