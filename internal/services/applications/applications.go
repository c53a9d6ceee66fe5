// Package applications содержит логику заявок на статус тренера:
// подача, просмотр, одобрение с переносом в профиль и отклонение.
package applications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/monoare/vigor-vista-server/internal/events"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Repository определяет методы хранилища заявок.
type Repository interface {
	InsertApplication(ctx context.Context, app models.TrainerApplication) (*models.InsertResult, error)
	ListApplications(ctx context.Context) ([]models.TrainerApplication, error)
	GetApplication(ctx context.Context, id string) (*models.TrainerApplication, error)
	DeleteApplication(ctx context.Context, id string) (*models.DeleteResult, error)
	ApproveApplication(ctx context.Context, id string) (*models.TrainerProfile, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// TrainerCache сбрасывает кеш списка тренеров.
type TrainerCache interface {
	InvalidateTrainers(ctx context.Context)
}

// Service реализует работу с заявками.
type Service struct {
	repo      Repository
	publisher Publisher
	trainers  TrainerCache
	log       *slog.Logger
}

// New создает сервис заявок.
func New(repo Repository, publisher Publisher, trainers TrainerCache, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		trainers:  trainers,
		log:       log,
	}
}

// Submit сохраняет заявку от имени email со статусом pending.
func (s *Service) Submit(ctx context.Context, email string, fields models.TrainerFields) (*models.InsertResult, error) {
	const op = "applications.Submit"

	fields.Email = models.NormalizeEmail(email)
	res, err := s.repo.InsertApplication(ctx, models.TrainerApplication{
		TrainerFields: fields,
		Status:        models.ApplicationPending,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trainer application submitted", slog.String("email", email))
	return res, nil
}

// List возвращает все заявки.
func (s *Service) List(ctx context.Context) ([]models.TrainerApplication, error) {
	const op = "applications.List"

	list, err := s.repo.ListApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Get возвращает заявку по идентификатору.
func (s *Service) Get(ctx context.Context, id string) (*models.TrainerApplication, error) {
	const op = "applications.Get"

	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return app, nil
}

// Approve переносит заявку в профиль тренера и повышает статус пользователя.
// Событие trainer.approved публикуется после фиксации транзакции.
func (s *Service) Approve(ctx context.Context, id string) (*models.TrainerProfile, error) {
	const op = "applications.Approve"

	profile, err := s.repo.ApproveApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trainer application approved",
		slog.String("application_id", id),
		slog.String("profile_id", profile.ID.Hex()),
		slog.String("email", profile.Email),
	)

	s.trainers.InvalidateTrainers(ctx)
	if err := s.publisher.Publish(ctx, events.TrainerApproved, profile); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", events.TrainerApproved), sl.Err(err))
	}
	return profile, nil
}

// Reject удаляет заявку.
func (s *Service) Reject(ctx context.Context, id string) (*models.DeleteResult, error) {
	const op = "applications.Reject"

	res, err := s.repo.DeleteApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trainer application rejected", slog.String("application_id", id))
	return res, nil
}
