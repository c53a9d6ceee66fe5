// Package vigorvista собирает HTTP-приложение Vigor Vista: хранилище,
// кеш, публикацию событий, платежного провайдера, сервисы и маршруты.
package vigorvista

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/time/rate"

	"github.com/monoare/vigor-vista-server/internal/cache"
	"github.com/monoare/vigor-vista-server/internal/config"
	"github.com/monoare/vigor-vista-server/internal/events"
	"github.com/monoare/vigor-vista-server/internal/http/middlewarectx"
	"github.com/monoare/vigor-vista-server/internal/lib/jwt"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/metrics"
	"github.com/monoare/vigor-vista-server/internal/migrations"
	"github.com/monoare/vigor-vista-server/internal/paymentprovider"
	"github.com/monoare/vigor-vista-server/internal/services/applications"
	"github.com/monoare/vigor-vista-server/internal/services/catalog"
	"github.com/monoare/vigor-vista-server/internal/services/forum"
	"github.com/monoare/vigor-vista-server/internal/services/gallery"
	"github.com/monoare/vigor-vista-server/internal/services/payments"
	"github.com/monoare/vigor-vista-server/internal/services/subscriptions"
	"github.com/monoare/vigor-vista-server/internal/services/users"
	"github.com/monoare/vigor-vista-server/internal/storage/mongodb"
)

const shutdownTimeout = 15 * time.Second

// Publisher публикует доменные события и освобождает соединение брокера.
type Publisher interface {
	events.Publisher
	io.Closer
}

// App HTTP-приложение со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *mongodb.Storage
	cache     io.Closer
	publisher Publisher
}

// New подключается к MongoDB, применяет миграции, поднимает необязательные
// Redis и RabbitMQ и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "vigorvista.New"

	db, err := mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.Client(), cfg.Mongo.Database, cfg.Mongo.MigrationsPath); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		cacher      catalog.Cache = cache.Noop{}
		cacheCloser io.Closer     = cache.Noop{}
	)
	if cfg.Redis.Address != "" {
		redisCache, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			_ = db.Close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cacher, cacheCloser = redisCache, redisCache
	} else {
		logger.Warn("redis address is empty, cache disabled")
	}

	var publisher Publisher = events.Noop{}
	if cfg.RabbitMQ.URL != "" {
		amqpPublisher, err := events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Retries)
		if err != nil {
			_ = cacheCloser.Close()
			_ = db.Close(ctx)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = amqpPublisher
	} else {
		logger.Warn("rabbitmq url is empty, events disabled")
	}

	metrics.Register()

	catalogService := catalog.New(db, cacher, logger)
	deps := Dependencies{
		Pinger:        db,
		Tokens:        jwt.NewJWTMaker(cfg.JWTToken.Secret, cfg.JWTToken.TokenTTL),
		Users:         users.New(db, logger),
		Subscriptions: subscriptions.New(db, logger),
		Applications:  applications.New(db, publisher, catalogService, logger),
		Catalog:       catalogService,
		Forum:         forum.New(db, publisher, logger),
		Payments: payments.New(
			db,
			paymentprovider.NewClient(cfg.Payment.SecretKey, cfg.Payment.APIURL, cfg.Payment.Timeout),
			publisher,
			cfg.Payment.Currency,
			logger,
		),
		Gallery: gallery.New(db),
		Limiter: middlewarectx.NewClientLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		cache:     cacheCloser,
		publisher: publisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его после отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("failed to close rabbitmq", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(ctx); err != nil {
		a.logger.Error("failed to close mongo", sl.Err(err))
	}
}
