// Package trainers реализует HTTP-обработчики публичных профилей тренеров.
package trainers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/monoare/vigor-vista-server/internal/http/request"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Service описывает интерфейс каталога тренеров.
type Service interface {
	ListTrainers(ctx context.Context) ([]models.TrainerProfile, error)
	GetTrainer(ctx context.Context, id string) (*models.TrainerProfile, error)
	UpdateTrainerPayment(ctx context.Context, id string, payment models.TrainerPayment) (*models.UpdateResult, error)
}

func logger(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List обрабатывает получение списка тренеров.
type List struct {
	log     *slog.Logger
	service Service
}

// NewList создает обработчик списка тренеров.
func NewList(log *slog.Logger, service Service) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список тренеров
// @Tags Trainers
// @Produce  json
// @Success 200 {array} models.TrainerProfile
// @Router /trainers [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger(h.log, r, "handlers.trainers.List")

	list, err := h.service.ListTrainers(r.Context())
	if err != nil {
		log.Error("failed to list trainers", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

// Get обрабатывает получение профиля тренера.
type Get struct {
	log     *slog.Logger
	service Service
}

// NewGet создает обработчик профиля тренера.
func NewGet(log *slog.Logger, service Service) *Get {
	return &Get{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профиль тренера
// @Tags Trainers
// @Produce  json
// @Param id path string true "ObjectID тренера"
// @Success 200 {object} models.TrainerProfile
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Тренер не найден"
// @Router /trainers/{id} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger(h.log, r, "handlers.trainers.Get")

	trainer, err := h.service.GetTrainer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Info("failed to get trainer", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, trainer)
}

// UpdatePayment обрабатывает изменение платежных данных тренера.
type UpdatePayment struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewUpdatePayment создает обработчик платежных данных тренера.
func NewUpdatePayment(log *slog.Logger, service Service) *UpdatePayment {
	return &UpdatePayment{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Платежные данные тренера
// @Description Записывает {status, price} в профиль тренера, создавая его при отсутствии.
// @Tags Trainers
// @Accept  json
// @Produce  json
// @Param id path string true "ObjectID тренера"
// @Param request body models.TrainerPayment true "Платежные данные"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /trainers/{id} [put]
func (h *UpdatePayment) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger(h.log, r, "handlers.trainers.UpdatePayment")

	var req models.TrainerPayment
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	res, err := h.service.UpdateTrainerPayment(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update trainer payment", slog.String("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, res)
}
