// Package events публикует доменные события платформы в RabbitMQ.
//
// Публикация не влияет на результат запроса: сервисы логируют ошибку
// и продолжают работу.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// Ключи маршрутизации событий.
const (
	TrainerApproved = "trainer.approved"
	PaymentRecorded = "payment.recorded"
	ForumPosted     = "forum.posted"
)

// Event конверт сообщения.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publisher интерфейс публикации событий.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// Channel часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher публикует события в exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       Channel
	conn     *amqp.Connection
	exchange string
	now      func() time.Time
}

// NewPublisher создает публикатор поверх открытого канала.
func NewPublisher(ch Channel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{
		ch:       ch,
		exchange: exchange,
		now:      time.Now,
	}
}

// Dial подключается к брокеру, объявляет exchange и возвращает публикатор,
// владеющий соединением.
func Dial(url, exchange string, retries int) (*AMQPPublisher, error) {
	const op = "events.Dial"

	conn, err := Connect(url, retries, DefaultRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := SetupExchange(conn, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p := NewPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

// Publish сериализует data в конверт Event и публикует persistent-сообщение.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	const op = "events.Publish"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(Event{
		Type:       routingKey,
		OccurredAt: p.now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    p.now(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Noop публикатор, который отбрасывает события. Используется без RabbitMQ.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

// Close ничего не делает.
func (Noop) Close() error { return nil }
