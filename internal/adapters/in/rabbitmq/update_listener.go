package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/ports/in"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// UpdateListener - живые обновления данных: события об изменении записей
// и расписаний приходят из бэкенда и сбрасывают кэш слотов врача.
// Следующий запрос слотов пересчитает их заново.
type UpdateListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	UpdateResourceType string
	UpdateAction       string
)

const (
	UpdateResourceAppointment UpdateResourceType = "appointment"
	UpdateResourceSchedule    UpdateResourceType = "schedule"
)

const (
	UpdateActionStore      UpdateAction = "store"
	UpdateActionInvalidate UpdateAction = "invalidate"
)

// Пример routingKey:
// backend.booking-slots-engine.appointment.<doctorId>.store
// backend.booking-slots-engine.schedule.<doctorId>.invalidate
type updateRoutingKey struct {
	Source   string
	Receiver string
	Resource UpdateResourceType
	Action   UpdateAction
}

// UpdateMessage - тело события; doctor_id достаточно для инвалидации,
// остальное несет бэкенд для других потребителей.
type UpdateMessage struct {
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date,omitempty"`
}

func NewUpdateListener(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) (*UpdateListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &UpdateListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *UpdateListener) Channel() *amqp.Channel {
	if l == nil {
		return nil
	}
	return l.channel
}

func (l *UpdateListener) Start(ctx context.Context) error {
	if err := l.startQueue(ctx, l.cfg.RabbitMq.AppointmentQueue, l.cfg.RabbitMq.AppointmentQueueBind); err != nil {
		return err
	}
	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.AppointmentQueue,
	})

	if err := l.startQueue(ctx, l.cfg.RabbitMq.ScheduleQueue, l.cfg.RabbitMq.ScheduleQueueBind); err != nil {
		return err
	}
	l.logger.Info("schedule.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMq.ScheduleQueue,
	})

	return nil
}

func (l *UpdateListener) startQueue(ctx context.Context, queueName, bindKey string) error {
	queue, err := l.channel.QueueDeclare(
		queueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		bindKey,
		l.cfg.RabbitMq.UpdatesExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					// Брокер закрыл канал доставки
					l.logger.Warn("rabbitmq.deliveries.closed", out.LogFields{
						"queue": queueName,
					})
					return
				}
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Warn("rabbitmq.message.failed", out.LogFields{
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *UpdateListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	key, err := parseUpdateRoutingKey(msg.RoutingKey)
	if err != nil {
		return err
	}

	if key.Resource != UpdateResourceAppointment && key.Resource != UpdateResourceSchedule {
		return nil
	}
	if key.Action != UpdateActionStore && key.Action != UpdateActionInvalidate {
		return nil
	}

	var message UpdateMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return err
	}
	if message.DoctorID == "" {
		return fmt.Errorf("update message without doctor_id")
	}

	// Store и invalidate для слотов означают одно и то же:
	// рассчитанный список устарел
	l.useCase.InvalidateDoctorSlots(ctx, message.DoctorID)

	l.logger.Info("update.message.processed", out.LogFields{
		"resource": key.Resource,
		"action":   key.Action,
		"doctorId": message.DoctorID,
	})

	return nil
}

func parseUpdateRoutingKey(routingKey string) (updateRoutingKey, error) {
	parts := strings.Split(routingKey, ".")
	if len(parts) < 5 {
		return updateRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return updateRoutingKey{
		Source:   parts[0],
		Receiver: parts[1],
		Resource: UpdateResourceType(parts[2]),
		Action:   UpdateAction(parts[4]),
	}, nil
}

func (l *UpdateListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
