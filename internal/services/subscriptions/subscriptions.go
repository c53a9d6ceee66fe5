// Package subscriptions содержит логику подписки на рассылку.
package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// MsgAlreadySubscribed сообщение результата повторной подписки.
const MsgAlreadySubscribed = "You have already subscribed"

// Repository определяет методы хранилища подписчиков.
type Repository interface {
	FindSubscriberByEmail(ctx context.Context, email string) (*models.Subscription, error)
	InsertSubscriber(ctx context.Context, sub models.Subscription) (*models.InsertResult, error)
	ListSubscribers(ctx context.Context) ([]models.Subscription, error)
}

// Service реализует подписку на рассылку.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает сервис подписок.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Subscribe добавляет подписчика, если email еще не подписан.
// Повторная подписка возвращает результат с InsertedID == nil.
func (s *Service) Subscribe(ctx context.Context, sub models.Subscription) (*models.InsertResult, error) {
	const op = "subscriptions.Subscribe"

	sub.Email = models.NormalizeEmail(sub.Email)
	_, err := s.repo.FindSubscriberByEmail(ctx, sub.Email)
	switch {
	case err == nil:
		return &models.InsertResult{Message: MsgAlreadySubscribed}, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.repo.InsertSubscriber(ctx, sub)
	if errors.Is(err, apperr.ErrAlreadyExists) {
		return &models.InsertResult{Message: MsgAlreadySubscribed}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("new subscriber", slog.String("email", sub.Email))
	return res, nil
}

// List возвращает всех подписчиков.
func (s *Service) List(ctx context.Context) ([]models.Subscription, error) {
	const op = "subscriptions.List"

	list, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
