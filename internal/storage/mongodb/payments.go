package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/monoare/vigor-vista-server/internal/models"
)

// InsertPayment сохраняет запись об оплате.
func (s *Storage) InsertPayment(ctx context.Context, p models.Payment) (*models.InsertResult, error) {
	const op = "storage.InsertPayment"

	res, err := s.coll(CollPayments).InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return insertResult(res), nil
}

// ListPayments возвращает оплаты, при непустом email — только оплаты этого пользователя.
func (s *Storage) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	const op = "storage.ListPayments"

	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	payments, err := findAll[models.Payment](ctx, s.coll(CollPayments), filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// FindPaidMember возвращает оплатившего пользователя по email или apperr.ErrNotFound.
func (s *Storage) FindPaidMember(ctx context.Context, email string) (*models.PaidMember, error) {
	const op = "storage.FindPaidMember"

	var m models.PaidMember
	if err := s.coll(CollPaidMembers).FindOne(ctx, bson.M{"email": email}).Decode(&m); err != nil {
		return nil, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return &m, nil
}

// InsertPaidMember сохраняет оплатившего пользователя.
func (s *Storage) InsertPaidMember(ctx context.Context, m models.PaidMember) (*models.InsertResult, error) {
	const op = "storage.InsertPaidMember"

	res, err := s.coll(CollPaidMembers).InsertOne(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, duplicate(err))
	}
	return insertResult(res), nil
}
