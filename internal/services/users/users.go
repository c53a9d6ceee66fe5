// Package users содержит бизнес-логику учетных записей пользователей.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// MsgUserExists сообщение результата повторной регистрации.
const MsgUserExists = "User is already present"

// Repository определяет методы хранилища, нужные сервису.
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, user models.User) (*models.InsertResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserProfile(ctx context.Context, email string, upd models.UserProfileUpdate) (*models.UpdateResult, error)
	SetUserStatus(ctx context.Context, email, status string) (*models.UpdateResult, error)
	FindPaidMember(ctx context.Context, email string) (*models.PaidMember, error)
}

// Service реализует операции над пользователями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает сервис пользователей.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create регистрирует пользователя, если пользователя с таким email еще нет.
// Для существующего email возвращается результат с InsertedID == nil и без ошибки.
// Статус и _id клиента отбрасываются: статус Trainer выдают только Promote
// и одобрение заявки.
func (s *Service) Create(ctx context.Context, user models.User) (*models.InsertResult, error) {
	const op = "users.Create"

	user.ID = primitive.NilObjectID
	user.Email = models.NormalizeEmail(user.Email)
	user.Status = ""
	_, err := s.repo.FindUserByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return alreadyPresent(), nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.repo.InsertUser(ctx, user)
	if errors.Is(err, apperr.ErrAlreadyExists) {
		// регистрация тем же email прошла между проверкой и вставкой
		return alreadyPresent(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("email", user.Email))
	return res, nil
}

func alreadyPresent() *models.InsertResult {
	return &models.InsertResult{Message: MsgUserExists}
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	const op = "users.List"

	list, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Get возвращает пользователя по email.
func (s *Service) Get(ctx context.Context, email string) (*models.User, error) {
	const op = "users.Get"

	email = models.NormalizeEmail(email)
	u, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Member возвращает флаги тренера и оплаченного участника для email.
// Отсутствие записей означает false, а не ошибку.
func (s *Service) Member(ctx context.Context, email string) (*models.Membership, error) {
	const op = "users.Member"

	email = models.NormalizeEmail(email)
	m := &models.Membership{Email: email}

	u, err := s.repo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		m.Trainer = u.Status == models.StatusTrainer
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.repo.FindPaidMember(ctx, email)
	switch {
	case err == nil:
		m.Member = true
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// UpdateProfile изменяет имя и фото пользователя (upsert).
func (s *Service) UpdateProfile(ctx context.Context, email string, upd models.UserProfileUpdate) (*models.UpdateResult, error) {
	const op = "users.UpdateProfile"

	email = models.NormalizeEmail(email)
	res, err := s.repo.UpdateUserProfile(ctx, email, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Promote выставляет пользователю статус Trainer (upsert).
func (s *Service) Promote(ctx context.Context, email string) (*models.UpdateResult, error) {
	const op = "users.Promote"

	email = models.NormalizeEmail(email)
	res, err := s.repo.SetUserStatus(ctx, email, models.StatusTrainer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user promoted to trainer", slog.String("email", email))
	return res, nil
}
