package mongo

import (
	"context"
	"errors"

	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScheduleStoreAdapter - хранилище расписаний врачей, один документ
// на врача с _id = doctorId.
type ScheduleStoreAdapter struct {
	collection *mongo.Collection
	logger     out.LoggerPort
}

func NewScheduleStoreAdapter(client *mongo.Client, cfg *config.Config, logger out.LoggerPort) *ScheduleStoreAdapter {
	return &ScheduleStoreAdapter{
		collection: client.Database(cfg.Mongo.Database).Collection(collectionSchedules),
		logger:     logger.WithModule("ScheduleStoreAdapter"),
	}
}

func (a *ScheduleStoreAdapter) GetSchedule(ctx context.Context, doctorID string) (*domain.DoctorSchedule, error) {
	var schedule domain.DoctorSchedule
	err := a.collection.FindOne(ctx, bson.M{"_id": doctorID}).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScheduleNotFound
		}
		a.logger.Error("mongo.schedule.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, domain.NewCollaboratorError("schedule.get", err)
	}
	return &schedule, nil
}

// SaveSchedule заменяет документ целиком, частичных правок расписания нет.
func (a *ScheduleStoreAdapter) SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error {
	opts := options.Replace().SetUpsert(true)
	_, err := a.collection.ReplaceOne(ctx, bson.M{"_id": schedule.DoctorID}, schedule, opts)
	if err != nil {
		a.logger.Error("mongo.schedule.save_failed", out.LogFields{
			"doctorId": schedule.DoctorID,
			"error":    err.Error(),
		})
		return domain.NewCollaboratorError("schedule.save", err)
	}
	return nil
}
