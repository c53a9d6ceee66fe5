package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/monoare/vigor-vista-server/internal/lib/sl"
)

// maxInFlight ограничивает число одновременно обрабатываемых сообщений очереди.
const maxInFlight = 10

// QueueConfig очередь и ключ, которым она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// NotificationQueues очереди воркера уведомлений.
func NotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.trainer_approved", RoutingKey: TrainerApproved},
		{QueueName: "notification.payment_recorded", RoutingKey: PaymentRecorded},
	}
}

// Binder часть amqp.Channel, нужная для объявления очередей.
type Binder interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// SetupQueues объявляет durable-очереди и привязывает их к exchange.
func SetupQueues(ch Binder, exchange string, queues []QueueConfig) error {
	const op = "events.SetupQueues"

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("%s: declare %s: %w", op, q.QueueName, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			return fmt.Errorf("%s: bind %s: %w", op, q.QueueName, err)
		}
	}
	return nil
}

// Consumer часть amqp.Channel, нужная для чтения очереди.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Consume читает очередь queueName до отмены ctx и передает тело каждого
// сообщения в handler. Успешно обработанное сообщение подтверждается,
// при ошибке возвращается в очередь.
func Consume(ctx context.Context, ch Consumer, queueName string, log *slog.Logger, handler func([]byte) error) error {
	const op = "events.Consume"

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(d.Body); err != nil {
						log.Error("failed to handle message", sl.Err(err))
						if nackErr := d.Nack(false, true); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := d.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
