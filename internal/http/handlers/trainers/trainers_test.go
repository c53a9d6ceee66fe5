package trainers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListTrainers(ctx context.Context) ([]models.TrainerProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrainerProfile), args.Error(1)
}

func (m *MockService) GetTrainer(ctx context.Context, id string) (*models.TrainerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainerProfile), args.Error(1)
}

func (m *MockService) UpdateTrainerPayment(ctx context.Context, id string, payment models.TrainerPayment) (*models.UpdateResult, error) {
	args := m.Called(ctx, id, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UpdateResult), args.Error(1)
}

func newRouter(svc Service) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Get("/trainers", NewList(log, svc).ServeHTTP)
	r.Get("/trainers/{id}", NewGet(log, svc).ServeHTTP)
	r.Put("/trainers/{id}", NewUpdatePayment(log, svc).ServeHTTP)
	return r
}

func TestTrainersHandlers(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "список пуст",
			method: http.MethodGet,
			path:   "/trainers",
			setupMock: func(m *MockService) {
				m.On("ListTrainers", mock.Anything).Return([]models.TrainerProfile{}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:   "некорректный id",
			method: http.MethodGet,
			path:   "/trainers/zzz",
			setupMock: func(m *MockService) {
				m.On("GetTrainer", mock.Anything, "zzz").Return(nil, apperr.ErrInvalidID).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"kind":"invalid_identifier","message":"invalid identifier"}`,
		},
		{
			name:   "обновление платежа",
			method: http.MethodPut,
			path:   "/trainers/65f000000000000000000001",
			body:   `{"status":"paid","price":49.5}`,
			setupMock: func(m *MockService) {
				m.On("UpdateTrainerPayment", mock.Anything, "65f000000000000000000001", models.TrainerPayment{Status: "paid", Price: 49.5}).
					Return(&models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"acknowledged":true,"matchedCount":1,"modifiedCount":1,"upsertedCount":0,"upsertedId":null}`,
		},
		{
			name:       "платеж без статуса",
			method:     http.MethodPut,
			path:       "/trainers/65f000000000000000000001",
			body:       `{"price":10}`,
			setupMock:  func(*MockService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"kind":"validation","message":"field Status is a required field"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
