package forum

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/events"
	"github.com/monoare/vigor-vista-server/internal/metrics"
	"github.com/monoare/vigor-vista-server/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountPosts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListPosts(ctx context.Context, skip, limit int64) ([]models.ForumPost, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ForumPost), args.Error(1)
}

func (m *RepoMock) InsertPost(ctx context.Context, post models.ForumPost) (*models.InsertResult, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InsertResult), args.Error(1)
}

func (m *RepoMock) UpVote(ctx context.Context, postID, email string) (*models.ForumPost, error) {
	args := m.Called(ctx, postID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumPost), args.Error(1)
}

func (m *RepoMock) DownVote(ctx context.Context, postID, email string) (*models.ForumPost, error) {
	args := m.Called(ctx, postID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForumPost), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, data any) error {
	return m.Called(ctx, routingKey, data).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name      string
		p         models.Pagination
		count     int64
		posts     []models.ForumPost
		wantSkip  int64
		wantCount int64
		wantLen   int
	}{
		{"empty collection", models.Pagination{Page: 0, Size: 10}, 0, nil, 0, 0, 0},
		{"second page", models.Pagination{Page: 1, Size: 2}, 5, []models.ForumPost{{Title: "c"}, {Title: "d"}}, 2, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("CountPosts", mock.Anything).Return(tt.count, nil).Once()
			repo.On("ListPosts", mock.Anything, tt.wantSkip, int64(tt.p.Size)).Return(tt.posts, nil).Once()

			got, err := New(repo, new(PublisherMock), newNoopLogger()).List(context.Background(), tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.NotNil(t, got.Result)
			assert.Len(t, got.Result, tt.wantLen)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_List_CountError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountPosts", mock.Anything).Return(int64(0), errors.New("db down")).Once()

	_, err := New(repo, new(PublisherMock), newNoopLogger()).List(context.Background(), models.Pagination{Size: 10})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListPosts", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create(t *testing.T) {
	repo, pub := new(RepoMock), new(PublisherMock)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo.On("InsertPost", mock.Anything, mock.MatchedBy(func(p models.ForumPost) bool {
		return p.AuthorEmail == "a@x.com" && p.UpVote == 0 && p.DownVote == 0 &&
			len(p.UpVotedBy) == 0 && p.UpVotedBy != nil && p.PostedAt.Equal(fixed)
	})).Return(&models.InsertResult{Acknowledged: true, InsertedID: "p1"}, nil).Once()
	pub.On("Publish", mock.Anything, events.ForumPosted, mock.Anything).Return(errors.New("broker down")).Once()

	svc := New(repo, pub, newNoopLogger())
	svc.now = func() time.Time { return fixed }

	res, err := svc.Create(context.Background(), "a@x.com", models.ForumPost{
		Title: "t", Description: "d", AuthorEmail: "spoofed@x.com", UpVote: 100, UpVotedBy: []string{"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", res.InsertedID)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestService_Vote(t *testing.T) {
	tests := []struct {
		name       string
		dir        models.VoteDirection
		setupMocks func(r *RepoMock)
		wantErr    error
		wantResult string
	}{
		{
			name: "upvote",
			dir:  models.VoteUp,
			setupMocks: func(r *RepoMock) {
				r.On("UpVote", mock.Anything, "p1", "a@x.com").Return(&models.ForumPost{UpVote: 1}, nil).Once()
			},
			wantResult: metrics.ResultOK,
		},
		{
			name: "downvote",
			dir:  models.VoteDown,
			setupMocks: func(r *RepoMock) {
				r.On("DownVote", mock.Anything, "p1", "a@x.com").Return(&models.ForumPost{DownVote: -1}, nil).Once()
			},
			wantResult: metrics.ResultOK,
		},
		{
			name: "duplicate upvote",
			dir:  models.VoteUp,
			setupMocks: func(r *RepoMock) {
				r.On("UpVote", mock.Anything, "p1", "a@x.com").Return(nil, apperr.ErrDuplicateVote).Once()
			},
			wantErr:    apperr.ErrDuplicateVote,
			wantResult: metrics.ResultDuplicate,
		},
		{
			name: "missing post",
			dir:  models.VoteDown,
			setupMocks: func(r *RepoMock) {
				r.On("DownVote", mock.Anything, "p1", "a@x.com").Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr:    apperr.ErrNotFound,
			wantResult: metrics.ResultError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			counter := metrics.ForumVotes.WithLabelValues(string(tt.dir), tt.wantResult)
			before := testutil.ToFloat64(counter)

			got, err := New(repo, new(PublisherMock), newNoopLogger()).Vote(context.Background(), tt.dir, "p1", "a@x.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, got)
			}
			assert.Equal(t, 1.0, testutil.ToFloat64(counter)-before)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Vote_EmailCaseIsOneVoter(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpVote", mock.Anything, "p1", "a@x.com").Return(&models.ForumPost{UpVote: 1}, nil).Once()
	repo.On("UpVote", mock.Anything, "p1", "a@x.com").Return(nil, apperr.ErrDuplicateVote).Once()
	svc := New(repo, new(PublisherMock), newNoopLogger())

	_, err := svc.Vote(context.Background(), models.VoteUp, "p1", "a@x.com")
	require.NoError(t, err)
	_, err = svc.Vote(context.Background(), models.VoteUp, "p1", " A@X.com")
	assert.ErrorIs(t, err, apperr.ErrDuplicateVote)
	repo.AssertExpectations(t)
}

func TestService_Vote_UnknownDirection(t *testing.T) {
	repo := new(RepoMock)

	_, err := New(repo, new(PublisherMock), newNoopLogger()).Vote(context.Background(), "sideways", "p1", "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
