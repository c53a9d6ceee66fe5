// Package catalog содержит логику чтения публичного каталога: профили тренеров
// и занятия. Чтения кешируются, изменения инвалидируют кеш.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Ключи кеша.
const (
	KeyTrainers = "trainers:all"
	KeyClasses  = "classes:all"
)

// TrainerKey ключ кеша профиля тренера.
func TrainerKey(id string) string { return "trainer:" + id }

// ClassKey ключ кеша занятия.
func ClassKey(id string) string { return "class:" + id }

// Repository определяет методы хранилища каталога.
type Repository interface {
	ListTrainers(ctx context.Context) ([]models.TrainerProfile, error)
	GetTrainer(ctx context.Context, id string) (*models.TrainerProfile, error)
	UpdateTrainerPayment(ctx context.Context, id string, payment models.TrainerPayment) (*models.UpdateResult, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	GetClass(ctx context.Context, id string) (*models.Class, error)
	InsertClass(ctx context.Context, class models.Class) (*models.InsertResult, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш.
	Set(ctx context.Context, key string, value any) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(ctx context.Context, keys ...string) error
}

// Service реализует чтение и изменение каталога.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает сервис каталога.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// cached возвращает значение из кеша или загружает его через load и кладет в кеш.
// Ошибки кеша логируются и не прерывают запрос.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	var result T
	found, err := s.cache.Get(ctx, key, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = load()
	if err != nil {
		return result, err
	}
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return result, nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to remove from cache", slog.Any("keys", keys), sl.Err(err))
	}
}

// ListTrainers возвращает все одобренные профили тренеров.
func (s *Service) ListTrainers(ctx context.Context) ([]models.TrainerProfile, error) {
	const op = "catalog.ListTrainers"

	list, err := cached(ctx, s, KeyTrainers, func() ([]models.TrainerProfile, error) {
		return s.repo.ListTrainers(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// GetTrainer возвращает профиль тренера по идентификатору.
func (s *Service) GetTrainer(ctx context.Context, id string) (*models.TrainerProfile, error) {
	const op = "catalog.GetTrainer"

	t, err := cached(ctx, s, TrainerKey(id), func() (*models.TrainerProfile, error) {
		return s.repo.GetTrainer(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// UpdateTrainerPayment записывает платежные данные тренера (upsert).
func (s *Service) UpdateTrainerPayment(ctx context.Context, id string, payment models.TrainerPayment) (*models.UpdateResult, error) {
	const op = "catalog.UpdateTrainerPayment"

	res, err := s.repo.UpdateTrainerPayment(ctx, id, payment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, TrainerKey(id), KeyTrainers)
	return res, nil
}

// InvalidateTrainers сбрасывает кеш списка тренеров.
func (s *Service) InvalidateTrainers(ctx context.Context) {
	s.invalidate(ctx, KeyTrainers)
}

// ListClasses возвращает все занятия.
func (s *Service) ListClasses(ctx context.Context) ([]models.Class, error) {
	const op = "catalog.ListClasses"

	list, err := cached(ctx, s, KeyClasses, func() ([]models.Class, error) {
		return s.repo.ListClasses(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// GetClass возвращает занятие по идентификатору.
func (s *Service) GetClass(ctx context.Context, id string) (*models.Class, error) {
	const op = "catalog.GetClass"

	c, err := cached(ctx, s, ClassKey(id), func() (*models.Class, error) {
		return s.repo.GetClass(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// CreateClass добавляет занятие.
func (s *Service) CreateClass(ctx context.Context, class models.Class) (*models.InsertResult, error) {
	const op = "catalog.CreateClass"

	res, err := s.repo.InsertClass(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, KeyClasses)
	return res, nil
}
