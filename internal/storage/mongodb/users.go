package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monoare/vigor-vista-server/internal/models"
)

// FindUserByEmail возвращает пользователя по email или apperr.ErrNotFound.
func (s *Storage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindUserByEmail"

	var u models.User
	if err := s.coll(CollUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return &u, nil
}

// InsertUser сохраняет нового пользователя.
func (s *Storage) InsertUser(ctx context.Context, user models.User) (*models.InsertResult, error) {
	const op = "storage.InsertUser"

	res, err := s.coll(CollUsers).InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, duplicate(err))
	}
	return insertResult(res), nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.ListUsers"

	users, err := findAll[models.User](ctx, s.coll(CollUsers), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateUserProfile обновляет имя и фото пользователя. Отсутствующий
// пользователь создается (upsert).
func (s *Storage) UpdateUserProfile(ctx context.Context, email string, upd models.UserProfileUpdate) (*models.UpdateResult, error) {
	const op = "storage.UpdateUserProfile"

	set := bson.M{"name": upd.Name}
	if upd.PhotoURL != "" {
		set["photoURL"] = upd.PhotoURL
	}
	res, err := s.coll(CollUsers).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updateResult(res), nil
}

// SetUserStatus устанавливает статус пользователя (upsert).
func (s *Storage) SetUserStatus(ctx context.Context, email, status string) (*models.UpdateResult, error) {
	const op = "storage.SetUserStatus"

	res, err := s.coll(CollUsers).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"status": status}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updateResult(res), nil
}
