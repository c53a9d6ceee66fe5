package mongodb

import (
	"context"
	"fmt"

	"github.com/monoare/vigor-vista-server/internal/models"
)

// CountImages возвращает оценку количества изображений галереи.
func (s *Storage) CountImages(ctx context.Context) (int64, error) {
	const op = "storage.CountImages"

	n, err := s.coll(CollGallery).EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListImages возвращает окно галереи.
func (s *Storage) ListImages(ctx context.Context, skip, limit int64) ([]models.GalleryImage, error) {
	const op = "storage.ListImages"

	images, err := page[models.GalleryImage](ctx, s.coll(CollGallery), skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return images, nil
}
