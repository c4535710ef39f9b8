package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
)

// Запись кэша: рассчитанные слоты врача по датам.
// Инвалидация всегда на уровне врача целиком - событие об изменении
// расписания затрагивает все его даты сразу.
type doctorSlotsEntry struct {
	days map[string][]domain.TimeSlot
}

type SlotsCacheAdapter struct {
	cache  *lru.Cache[string, *doctorSlotsEntry]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewSlotsCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*SlotsCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruCache, err := lru.New[string, *doctorSlotsEntry](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &SlotsCacheAdapter{
		cache:  lruCache,
		logger: logger.WithModule("SlotsCacheAdapter"),
	}, nil
}

func (c *SlotsCacheAdapter) GetSlots(ctx context.Context, doctorID, date string) ([]domain.TimeSlot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.cache.Get(doctorID)
	if !exists {
		return nil, false
	}

	slots, exists := entry.days[date]
	if !exists {
		return nil, false
	}

	c.logger.Debug("cache.slots.hit", out.LogFields{
		"doctorId":   doctorID,
		"date":       date,
		"slotsCount": len(slots),
	})
	return slots, true
}

func (c *SlotsCacheAdapter) StoreSlots(ctx context.Context, doctorID, date string, slots []domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.cache.Get(doctorID)
	if !exists {
		entry = &doctorSlotsEntry{days: make(map[string][]domain.TimeSlot)}
	}
	entry.days[date] = slots

	c.cache.Add(doctorID, entry)

	c.logger.Debug("cache.slots.store", out.LogFields{
		"doctorId":   doctorID,
		"date":       date,
		"slotsCount": len(slots),
	})
}

func (c *SlotsCacheAdapter) InvalidateDoctor(ctx context.Context, doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(doctorID)
}

func (c *SlotsCacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}
