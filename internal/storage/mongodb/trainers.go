package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monoare/vigor-vista-server/internal/models"
)

// ListTrainers возвращает все профили тренеров.
func (s *Storage) ListTrainers(ctx context.Context) ([]models.TrainerProfile, error) {
	const op = "storage.ListTrainers"

	trainers, err := findAll[models.TrainerProfile](ctx, s.coll(CollTrainers), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return trainers, nil
}

// GetTrainer возвращает профиль тренера по идентификатору.
func (s *Storage) GetTrainer(ctx context.Context, id string) (*models.TrainerProfile, error) {
	const op = "storage.GetTrainer"

	trainer, err := findByID[models.TrainerProfile](ctx, s.coll(CollTrainers), id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return trainer, nil
}

// UpdateTrainerPayment обновляет платежные поля профиля. Отсутствующий
// профиль создается (upsert).
func (s *Storage) UpdateTrainerPayment(ctx context.Context, id string, payment models.TrainerPayment) (*models.UpdateResult, error) {
	const op = "storage.UpdateTrainerPayment"

	oid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.coll(CollTrainers).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"payment.status": payment.Status,
			"payment.price":  payment.Price,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updateResult(res), nil
}
