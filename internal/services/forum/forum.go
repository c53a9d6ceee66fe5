// Package forum содержит логику форума: постраничный просмотр, публикация
// постов и голосование.
package forum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/events"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/metrics"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Repository определяет методы хранилища форума.
type Repository interface {
	CountPosts(ctx context.Context) (int64, error)
	ListPosts(ctx context.Context, skip, limit int64) ([]models.ForumPost, error)
	InsertPost(ctx context.Context, post models.ForumPost) (*models.InsertResult, error)
	UpVote(ctx context.Context, postID, email string) (*models.ForumPost, error)
	DownVote(ctx context.Context, postID, email string) (*models.ForumPost, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// Service реализует операции форума.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// New создает сервис форума.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// List возвращает страницу постов и общее количество постов.
func (s *Service) List(ctx context.Context, p models.Pagination) (models.Page[models.ForumPost], error) {
	const op = "forum.List"

	count, err := s.repo.CountPosts(ctx)
	if err != nil {
		return models.Page[models.ForumPost]{}, fmt.Errorf("%s: %w", op, err)
	}
	posts, err := s.repo.ListPosts(ctx, p.Skip(), int64(p.Size))
	if err != nil {
		return models.Page[models.ForumPost]{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.NewPage(count, posts), nil
}

// Create публикует пост от имени email. Счетчики и списки голосов
// обнуляются независимо от тела запроса.
func (s *Service) Create(ctx context.Context, email string, post models.ForumPost) (*models.InsertResult, error) {
	const op = "forum.Create"

	post.AuthorEmail = models.NormalizeEmail(email)
	post.PostedAt = s.now().UTC()
	post.UpVote, post.DownVote = 0, 0
	post.UpVotedBy, post.DownVotedBy = []string{}, []string{}

	res, err := s.repo.InsertPost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.publisher.Publish(ctx, events.ForumPosted, map[string]any{
		"postId":      res.InsertedID,
		"title":       post.Title,
		"authorEmail": email,
	}); err != nil {
		s.log.Warn("failed to publish event", slog.String("event", events.ForumPosted), sl.Err(err))
	}
	return res, nil
}

// Vote голосует email за пост в направлении dir. Повторный голос в том же
// направлении возвращает apperr.ErrDuplicateVote.
func (s *Service) Vote(ctx context.Context, dir models.VoteDirection, postID, email string) (*models.ForumPost, error) {
	const op = "forum.Vote"

	email = models.NormalizeEmail(email)
	var (
		post *models.ForumPost
		err  error
	)
	switch dir {
	case models.VoteUp:
		post, err = s.repo.UpVote(ctx, postID, email)
	case models.VoteDown:
		post, err = s.repo.DownVote(ctx, postID, email)
	default:
		return nil, fmt.Errorf("%s: unknown direction %q: %w", op, dir, apperr.ErrInvalidInput)
	}

	switch {
	case err == nil:
		metrics.ForumVotes.WithLabelValues(string(dir), metrics.ResultOK).Inc()
	case errors.Is(err, apperr.ErrDuplicateVote):
		metrics.ForumVotes.WithLabelValues(string(dir), metrics.ResultDuplicate).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	default:
		metrics.ForumVotes.WithLabelValues(string(dir), metrics.ResultError).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return post, nil
}

// UpVote голосует за пост.
func (s *Service) UpVote(ctx context.Context, postID, email string) (*models.ForumPost, error) {
	return s.Vote(ctx, models.VoteUp, postID, email)
}

// DownVote голосует против поста.
func (s *Service) DownVote(ctx context.Context, postID, email string) (*models.ForumPost, error) {
	return s.Vote(ctx, models.VoteDown, postID, email)
}
