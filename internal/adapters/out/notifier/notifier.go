package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionNotifications = "notifications"

// NotifierAdapter сохраняет уведомление в коллекцию (лента уведомлений
// пользователя) и публикует событие в RabbitMQ для доставки пушей.
// Публикация best-effort: сохраненный документ важнее пуша.
type NotifierAdapter struct {
	collection *mongo.Collection
	channel    *amqp.Channel
	exchange   string
	logger     out.LoggerPort
}

func NewNotifierAdapter(client *mongo.Client, channel *amqp.Channel, cfg *config.Config, logger out.LoggerPort) *NotifierAdapter {
	return &NotifierAdapter{
		collection: client.Database(cfg.Mongo.Database).Collection(collectionNotifications),
		channel:    channel,
		exchange:   cfg.RabbitMq.NotificationsExchange,
		logger:     logger.WithModule("NotifierAdapter"),
	}
}

func (a *NotifierAdapter) Notify(ctx context.Context, notification domain.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	if _, err := a.collection.InsertOne(ctx, notification); err != nil {
		a.logger.Error("notifier.store_failed", out.LogFields{
			"userId": notification.UserID,
			"error":  err.Error(),
		})
		return domain.NewCollaboratorError("notification.store", err)
	}

	a.publish(ctx, notification)

	return nil
}

func (a *NotifierAdapter) publish(ctx context.Context, notification domain.Notification) {
	if a.channel == nil {
		return
	}

	body, err := json.Marshal(notification)
	if err != nil {
		a.logger.Error("notifier.publish.marshal_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	routingKey := "notifications." + string(notification.Kind)
	err = a.channel.PublishWithContext(ctx, a.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   notification.ID,
		Timestamp:   notification.CreatedAt,
		Body:        body,
	})
	if err != nil {
		// Документ уже сохранен, пуш догонит при переотправке
		a.logger.Warn("notifier.publish.failed", out.LogFields{
			"userId": notification.UserID,
			"error":  err.Error(),
		})
		return
	}

	a.logger.Debug("notifier.published", out.LogFields{
		"userId":     notification.UserID,
		"kind":       notification.Kind,
		"routingKey": routingKey,
	})
}
