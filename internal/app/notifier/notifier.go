// Package notifier собирает воркер уведомлений: читает очереди событий
// RabbitMQ и отправляет письма через SMTP.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/monoare/vigor-vista-server/internal/config"
	"github.com/monoare/vigor-vista-server/internal/events"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/lib/smtp"
	notifierservice "github.com/monoare/vigor-vista-server/internal/services/notifier"
)

var (
	// ErrNoBroker возвращается, если не задан URL RabbitMQ.
	ErrNoBroker = errors.New("rabbitmq url is not set")
	// ErrNoSMTP возвращается, если не задан SMTP-сервер.
	ErrNoSMTP = errors.New("smtp host is not set")
)

// App воркер уведомлений.
type App struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	notifier *notifierservice.Service
	logger   *slog.Logger
}

// New подключается к брокеру и объявляет очереди уведомлений.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "notifier.New"

	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoBroker)
	}
	if cfg.SMTP.Host == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSMTP)
	}

	conn, err := events.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, events.DefaultRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := events.SetupExchange(conn, cfg.RabbitMQ.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := events.SetupQueues(ch, cfg.RabbitMQ.Exchange, events.NotificationQueues()); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		conn:     conn,
		ch:       ch,
		notifier: notifierservice.New(smtp.NewTransport(cfg.SMTP, logger), logger),
		logger:   logger,
	}, nil
}

// Run запускает потребителей и ждет отмены ctx.
func (a *App) Run(ctx context.Context) error {
	handlers := map[string]func([]byte) error{
		events.TrainerApproved: a.notifier.TrainerApproved,
		events.PaymentRecorded: a.notifier.PaymentRecorded,
	}
	for _, q := range events.NotificationQueues() {
		if err := events.Consume(ctx, a.ch, q.QueueName, a.logger, handlers[q.RoutingKey]); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", q.QueueName), sl.Err(err))
			a.close()
			return err
		}
		a.logger.Info("consumer started", slog.String("queue", q.QueueName))
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")
	a.close()
	return nil
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}
