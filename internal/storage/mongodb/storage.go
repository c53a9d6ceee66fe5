// Package mongodb реализует хранилище данных платформы на основе MongoDB.
// Storage владеет клиентом драйвера: создается при старте процесса,
// передается в сервисы и закрывается при остановке.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/monoare/vigor-vista-server/internal/apperr"
)

// Имена коллекций.
const (
	CollUsers        = "users"
	CollSubscribers  = "subscribe"
	CollApplications = "applications"
	CollTrainers     = "profile"
	CollClasses      = "classes"
	CollForum        = "forum"
	CollPayments     = "payments"
	CollPaidMembers  = "paidMembers"
	CollGallery      = "gallery"
)

// Storage инкапсулирует клиент MongoDB и базу данных приложения.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB по uri, проверяет соединение ping-ом
// и возвращает хранилище для базы database.
func New(ctx context.Context, uri, database string, timeout time.Duration) (*Storage, error) {
	const op = "storage.mongodb.New"

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Close закрывает соединения клиента.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping проверяет доступность primary.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Client возвращает клиент драйвера.
func (s *Storage) Client() *mongo.Client {
	return s.client
}

// Database возвращает базу данных приложения.
func (s *Storage) Database() *mongo.Database {
	return s.db
}

func (s *Storage) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// parseID преобразует hex-строку в ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, apperr.ErrInvalidID)
	}
	return oid, nil
}

// notFound переводит mongo.ErrNoDocuments в apperr.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.ErrNotFound
	}
	return err
}

// duplicate переводит ошибку уникального индекса в apperr.ErrAlreadyExists.
func duplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperr.ErrAlreadyExists
	}
	return err
}

// findAll читает все документы коллекции по фильтру в естественном порядке.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// findByID читает документ по строковому идентификатору.
func findByID[T any](ctx context.Context, c *mongo.Collection, id string) (*T, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := c.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

// page читает окно коллекции: пропускает skip документов и возвращает не более limit.
func page[T any](ctx context.Context, c *mongo.Collection, skip, limit int64) ([]T, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	return findAll[T](ctx, c, bson.M{}, opts)
}
