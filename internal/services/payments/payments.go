// Package payments содержит логику оплаты пакетов тренеров: создание
// платежного намерения у провайдера и учет проведенных платежей.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/events"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/metrics"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Repository определяет методы хранилища платежей.
type Repository interface {
	InsertPayment(ctx context.Context, p models.Payment) (*models.InsertResult, error)
	ListPayments(ctx context.Context, email string) ([]models.Payment, error)
	FindPaidMember(ctx context.Context, email string) (*models.PaidMember, error)
	InsertPaidMember(ctx context.Context, m models.PaidMember) (*models.InsertResult, error)
}

// Provider создает платежные намерения у процессора.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// Service реализует операции с платежами.
type Service struct {
	repo      Repository
	provider  Provider
	publisher Publisher
	currency  string
	log       *slog.Logger
	now       func() time.Time
}

// New создает сервис платежей для валюты currency.
func New(repo Repository, provider Provider, publisher Publisher, currency string, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		provider:  provider,
		publisher: publisher,
		currency:  currency,
		log:       log,
		now:       time.Now,
	}
}

// MinorUnits переводит цену в минимальные единицы валюты (центы).
// Небольшая поправка компенсирует погрешность двоичного представления,
// чтобы 19.99 давало 1999, а не 1998.
func MinorUnits(price float64) int64 {
	return int64(math.Floor(price*100 + 1e-6))
}

// CreateIntent создает карточное платежное намерение на сумму price
// и возвращает client secret провайдера.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	const op = "payments.CreateIntent"

	amount := MinorUnits(price)
	if math.IsNaN(price) || math.IsInf(price, 0) || amount <= 0 {
		metrics.PaymentIntents.WithLabelValues(metrics.ResultError).Inc()
		return "", fmt.Errorf("%s: price must be positive: %w", op, apperr.ErrInvalidInput)
	}

	secret, err := s.provider.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues(metrics.ResultError).Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	metrics.PaymentIntents.WithLabelValues(metrics.ResultOK).Inc()
	s.log.Info("payment intent created", slog.Int64("amount", amount), slog.String("currency", s.currency))
	return secret, nil
}

// Record сохраняет платеж пользователя email и отмечает его оплаченным участником.
func (s *Service) Record(ctx context.Context, email string, p models.Payment) (*models.InsertResult, error) {
	const op = "payments.Record"

	p.Email = models.NormalizeEmail(email)
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}

	res, err := s.repo.InsertPayment(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.ensureMember(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment recorded",
		slog.String("email", email),
		slog.String("transaction_id", p.TransactionID),
	)
	if err := s.publisher.Publish(ctx, events.PaymentRecorded, p); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", events.PaymentRecorded), sl.Err(err))
	}
	return res, nil
}

// ensureMember создает запись оплаченного участника, если ее еще нет.
func (s *Service) ensureMember(ctx context.Context, p models.Payment) error {
	_, err := s.repo.FindPaidMember(ctx, p.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	_, err = s.repo.InsertPaidMember(ctx, models.PaidMember{
		Email:   p.Email,
		Name:    p.Name,
		Package: p.Package,
		Since:   p.Date,
	})
	if err != nil && !errors.Is(err, apperr.ErrAlreadyExists) {
		return err
	}
	return nil
}

// List возвращает платежи. Пустой email возвращает все платежи.
func (s *Service) List(ctx context.Context, email string) ([]models.Payment, error) {
	const op = "payments.List"

	list, err := s.repo.ListPayments(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
