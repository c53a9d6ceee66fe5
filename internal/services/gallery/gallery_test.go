package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/monoare/vigor-vista-server/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountImages(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListImages(ctx context.Context, skip, limit int64) ([]models.GalleryImage, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}

func TestService_List(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountImages", mock.Anything).Return(int64(12), nil).Once()
	repo.On("ListImages", mock.Anything, int64(10), int64(5)).
		Return([]models.GalleryImage{{Image: "https://img/1.png"}}, nil).Once()

	got, err := New(repo).List(context.Background(), models.Pagination{Page: 2, Size: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 12, got.Count)
	assert.Len(t, got.Result, 1)
	repo.AssertExpectations(t)
}

func TestService_List_Empty(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountImages", mock.Anything).Return(int64(0), nil).Once()
	repo.On("ListImages", mock.Anything, int64(0), int64(10)).Return(nil, nil).Once()

	got, err := New(repo).List(context.Background(), models.Pagination{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.NotNil(t, got.Result)
	assert.Empty(t, got.Result)
}

func TestService_List_Error(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountImages", mock.Anything).Return(int64(0), nil).Once()
	repo.On("ListImages", mock.Anything, int64(0), int64(10)).Return(nil, errors.New("db down")).Once()

	_, err := New(repo).List(context.Background(), models.Pagination{Size: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gallery.List")
}
