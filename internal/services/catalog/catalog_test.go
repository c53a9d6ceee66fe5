package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListTrainers(ctx context.Context) ([]models.TrainerProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrainerProfile), args.Error(1)
}

func (m *RepoMock) GetTrainer(ctx context.Context, id string) (*models.TrainerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainerProfile), args.Error(1)
}

func (m *RepoMock) UpdateTrainerPayment(ctx context.Context, id string, payment models.TrainerPayment) (*models.UpdateResult, error) {
	args := m.Called(ctx, id, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UpdateResult), args.Error(1)
}

func (m *RepoMock) ListClasses(ctx context.Context) ([]models.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Class), args.Error(1)
}

func (m *RepoMock) GetClass(ctx context.Context, id string) (*models.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Class), args.Error(1)
}

func (m *RepoMock) InsertClass(ctx context.Context, class models.Class) (*models.InsertResult, error) {
	args := m.Called(ctx, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InsertResult), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_GetTrainer(t *testing.T) {
	trainer := &models.TrainerProfile{TrainerFields: models.TrainerFields{Name: "Sam"}}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		want       *models.TrainerProfile
		wantErr    error
	}{
		{
			name: "cache hit",
			setupMocks: func(_ *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "trainer:1", mock.Anything).
					Run(func(args mock.Arguments) {
						*(args.Get(2).(**models.TrainerProfile)) = trainer
					}).
					Return(true, nil).Once()
			},
			want: trainer,
		},
		{
			name: "cache miss loads and stores",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "trainer:1", mock.Anything).Return(false, nil).Once()
				r.On("GetTrainer", mock.Anything, "1").Return(trainer, nil).Once()
				c.On("Set", mock.Anything, "trainer:1", trainer).Return(nil).Once()
			},
			want: trainer,
		},
		{
			name: "cache failure falls back to repository",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "trainer:1", mock.Anything).Return(false, errors.New("redis down")).Once()
				r.On("GetTrainer", mock.Anything, "1").Return(trainer, nil).Once()
				c.On("Set", mock.Anything, "trainer:1", trainer).Return(errors.New("redis down")).Once()
			},
			want: trainer,
		},
		{
			name: "not found is not cached",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", mock.Anything, "trainer:1", mock.Anything).Return(false, nil).Once()
				r.On("GetTrainer", mock.Anything, "1").Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache := new(RepoMock), new(CacheMock)
			tt.setupMocks(repo, cache)

			got, err := New(repo, cache, newNoopLogger()).GetTrainer(context.Background(), "1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_ListClasses_CacheMiss(t *testing.T) {
	repo, cache := new(RepoMock), new(CacheMock)
	classes := []models.Class{{Name: "Yoga"}}
	cache.On("Get", mock.Anything, KeyClasses, mock.Anything).Return(false, nil).Once()
	repo.On("ListClasses", mock.Anything).Return(classes, nil).Once()
	cache.On("Set", mock.Anything, KeyClasses, classes).Return(nil).Once()

	got, err := New(repo, cache, newNoopLogger()).ListClasses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, classes, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_UpdateTrainerPayment_Invalidates(t *testing.T) {
	repo, cache := new(RepoMock), new(CacheMock)
	payment := models.TrainerPayment{Status: "paid", Price: 25}
	repo.On("UpdateTrainerPayment", mock.Anything, "1", payment).Return(&models.UpdateResult{MatchedCount: 1}, nil).Once()
	cache.On("Invalidate", mock.Anything, []string{"trainer:1", KeyTrainers}).Return(nil).Once()

	res, err := New(repo, cache, newNoopLogger()).UpdateTrainerPayment(context.Background(), "1", payment)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_UpdateTrainerPayment_ErrorKeepsCache(t *testing.T) {
	repo, cache := new(RepoMock), new(CacheMock)
	repo.On("UpdateTrainerPayment", mock.Anything, "bad", mock.Anything).Return(nil, apperr.ErrInvalidID).Once()

	_, err := New(repo, cache, newNoopLogger()).UpdateTrainerPayment(context.Background(), "bad", models.TrainerPayment{})
	assert.ErrorIs(t, err, apperr.ErrInvalidID)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestService_CreateClass_Invalidates(t *testing.T) {
	repo, cache := new(RepoMock), new(CacheMock)
	class := models.Class{Name: "Boxing"}
	repo.On("InsertClass", mock.Anything, class).Return(&models.InsertResult{Acknowledged: true}, nil).Once()
	cache.On("Invalidate", mock.Anything, []string{KeyClasses}).Return(errors.New("redis down")).Once()

	res, err := New(repo, cache, newNoopLogger()).CreateClass(context.Background(), class)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	cache.AssertExpectations(t)
}
