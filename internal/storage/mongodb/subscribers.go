package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/monoare/vigor-vista-server/internal/models"
)

// FindSubscriberByEmail возвращает подписчика по email или apperr.ErrNotFound.
func (s *Storage) FindSubscriberByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	const op = "storage.FindSubscriberByEmail"

	var sub models.Subscription
	if err := s.coll(CollSubscribers).FindOne(ctx, bson.M{"email": email}).Decode(&sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return &sub, nil
}

// InsertSubscriber сохраняет новую подписку.
func (s *Storage) InsertSubscriber(ctx context.Context, sub models.Subscription) (*models.InsertResult, error) {
	const op = "storage.InsertSubscriber"

	res, err := s.coll(CollSubscribers).InsertOne(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, duplicate(err))
	}
	return insertResult(res), nil
}

// ListSubscribers возвращает всех подписчиков.
func (s *Storage) ListSubscribers(ctx context.Context) ([]models.Subscription, error) {
	const op = "storage.ListSubscribers"

	subs, err := findAll[models.Subscription](ctx, s.coll(CollSubscribers), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}
