// Команда notifier читает события Vigor Vista из RabbitMQ и рассылает письма.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/monoare/vigor-vista-server/internal/app/notifier"
	"github.com/monoare/vigor-vista-server/internal/config"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	log := sl.New(cfg.Env).With(slog.String("component", "notifier"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("notifier failed", sl.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("connecting to broker",
		slog.String("exchange", cfg.RabbitMQ.Exchange),
		slog.String("smtp_host", cfg.SMTP.Host),
	)

	app, err := notifier.New(cfg, log)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
