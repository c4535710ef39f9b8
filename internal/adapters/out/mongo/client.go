package mongo

import (
	"context"
	"time"

	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collectionSchedules     = "doctor_schedules"
	collectionAppointments  = "appointments"
	collectionNotifications = "notifications"
)

// NewClient подключается к MongoDB и проверяет соединение пингом.
func NewClient(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Error("mongo.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		logger.Error("mongo.ping.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("mongo.connected", out.LogFields{
		"database": cfg.Mongo.Database,
	})

	return client, nil
}
