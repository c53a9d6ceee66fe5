package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/monoare/vigor-vista-server/internal/models"
)

// ListClasses возвращает все занятия.
func (s *Storage) ListClasses(ctx context.Context) ([]models.Class, error) {
	const op = "storage.ListClasses"

	classes, err := findAll[models.Class](ctx, s.coll(CollClasses), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}

// GetClass возвращает занятие по идентификатору.
func (s *Storage) GetClass(ctx context.Context, id string) (*models.Class, error) {
	const op = "storage.GetClass"

	class, err := findByID[models.Class](ctx, s.coll(CollClasses), id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return class, nil
}

// InsertClass сохраняет новое занятие.
func (s *Storage) InsertClass(ctx context.Context, class models.Class) (*models.InsertResult, error) {
	const op = "storage.InsertClass"

	res, err := s.coll(CollClasses).InsertOne(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return insertResult(res), nil
}
