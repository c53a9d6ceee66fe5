package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// InsertApplication сохраняет заявку тренера.
func (s *Storage) InsertApplication(ctx context.Context, app models.TrainerApplication) (*models.InsertResult, error) {
	const op = "storage.InsertApplication"

	res, err := s.coll(CollApplications).InsertOne(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return insertResult(res), nil
}

// ListApplications возвращает все заявки.
func (s *Storage) ListApplications(ctx context.Context) ([]models.TrainerApplication, error) {
	const op = "storage.ListApplications"

	apps, err := findAll[models.TrainerApplication](ctx, s.coll(CollApplications), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return apps, nil
}

// GetApplication возвращает заявку по идентификатору.
func (s *Storage) GetApplication(ctx context.Context, id string) (*models.TrainerApplication, error) {
	const op = "storage.GetApplication"

	app, err := findByID[models.TrainerApplication](ctx, s.coll(CollApplications), id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return app, nil
}

// DeleteApplication удаляет заявку. Отсутствующая заявка — apperr.ErrNotFound.
func (s *Storage) DeleteApplication(ctx context.Context, id string) (*models.DeleteResult, error) {
	const op = "storage.DeleteApplication"

	oid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.coll(CollApplications).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return deleteResult(res), nil
}

// ApproveApplication в одной транзакции создает профиль тренера из заявки,
// удаляет заявку и проставляет пользователю статус Trainer.
// Транзакции требуют replica set или sharded cluster.
func (s *Storage) ApproveApplication(ctx context.Context, id string) (*models.TrainerProfile, error) {
	const op = "storage.ApproveApplication"

	oid, err := parseID(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		var app models.TrainerApplication
		if err := s.coll(CollApplications).FindOne(sc, bson.M{"_id": oid}).Decode(&app); err != nil {
			return nil, notFound(err)
		}

		profile := models.ProfileFromApplication(app)
		ins, err := s.coll(CollTrainers).InsertOne(sc, profile)
		if err != nil {
			return nil, err
		}
		if pid, ok := ins.InsertedID.(primitive.ObjectID); ok {
			profile.ID = pid
		}

		del, err := s.coll(CollApplications).DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return nil, err
		}
		if del.DeletedCount == 0 {
			return nil, apperr.ErrNotFound
		}

		if _, err := s.coll(CollUsers).UpdateOne(sc,
			bson.M{"email": app.Email},
			bson.M{"$set": bson.M{"status": models.StatusTrainer}},
			options.Update().SetUpsert(true),
		); err != nil {
			return nil, err
		}
		return &profile, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res.(*models.TrainerProfile), nil
}
