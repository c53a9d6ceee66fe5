package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// CountPosts возвращает оценку количества постов форума.
func (s *Storage) CountPosts(ctx context.Context) (int64, error) {
	const op = "storage.CountPosts"

	n, err := s.coll(CollForum).EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListPosts возвращает окно постов в естественном порядке коллекции.
func (s *Storage) ListPosts(ctx context.Context, skip, limit int64) ([]models.ForumPost, error) {
	const op = "storage.ListPosts"

	posts, err := page[models.ForumPost](ctx, s.coll(CollForum), skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return posts, nil
}

// InsertPost сохраняет пост. Списки голосовавших инициализируются пустыми
// массивами, иначе $addToSet по null-полю завершится ошибкой.
func (s *Storage) InsertPost(ctx context.Context, post models.ForumPost) (*models.InsertResult, error) {
	const op = "storage.InsertPost"

	if post.UpVotedBy == nil {
		post.UpVotedBy = []string{}
	}
	if post.DownVotedBy == nil {
		post.DownVotedBy = []string{}
	}
	res, err := s.coll(CollForum).InsertOne(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return insertResult(res), nil
}

// UpVote атомарно увеличивает upVote на 1 и добавляет email в upVotedBy,
// если email там еще нет.
func (s *Storage) UpVote(ctx context.Context, postID, email string) (*models.ForumPost, error) {
	return s.vote(ctx, "storage.UpVote", postID, email, "upVote", "upVotedBy", 1)
}

// DownVote атомарно изменяет downVote на -1 и добавляет email в downVotedBy,
// если email там еще нет.
func (s *Storage) DownVote(ctx context.Context, postID, email string) (*models.ForumPost, error) {
	return s.vote(ctx, "storage.DownVote", postID, email, "downVote", "downVotedBy", -1)
}

// vote выполняет условное обновление одним запросом: фильтр исключает посты,
// где email уже есть в списке, поэтому повторный голос не проходит даже при
// конкурентных запросах. Если ни один документ не подошел, отдельная проверка
// отличает отсутствующий пост от повторного голоса.
func (s *Storage) vote(ctx context.Context, op, postID, email, counter, voters string, delta int) (*models.ForumPost, error) {
	oid, err := parseID(postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.M{
		"_id":  oid,
		voters: bson.M{"$ne": email},
	}
	update := bson.M{
		"$inc":      bson.M{counter: delta},
		"$addToSet": bson.M{voters: email},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.ForumPost
	err = s.coll(CollForum).FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == nil {
		return &post, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.coll(CollForum).CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil, fmt.Errorf("%s: %w", op, apperr.ErrDuplicateVote)
}
