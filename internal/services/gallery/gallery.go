// Package gallery отдает изображения галереи постранично.
package gallery

import (
	"context"
	"fmt"

	"github.com/monoare/vigor-vista-server/internal/models"
)

// Repository определяет методы хранилища галереи.
type Repository interface {
	CountImages(ctx context.Context) (int64, error)
	ListImages(ctx context.Context, skip, limit int64) ([]models.GalleryImage, error)
}

// Service реализует просмотр галереи.
type Service struct {
	repo Repository
}

// New создает сервис галереи.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает страницу изображений и их общее количество.
func (s *Service) List(ctx context.Context, p models.Pagination) (models.Page[models.GalleryImage], error) {
	const op = "gallery.List"

	count, err := s.repo.CountImages(ctx)
	if err != nil {
		return models.Page[models.GalleryImage]{}, fmt.Errorf("%s: %w", op, err)
	}
	images, err := s.repo.ListImages(ctx, p.Skip(), int64(p.Size))
	if err != nil {
		return models.Page[models.GalleryImage]{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.NewPage(count, images), nil
}
