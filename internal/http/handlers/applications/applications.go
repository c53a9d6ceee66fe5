// Package applications реализует HTTP-обработчики заявок на статус тренера:
// подачу, просмотр, одобрение и отклонение.
package applications

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/http/middlewarectx"
	"github.com/monoare/vigor-vista-server/internal/http/request"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Service описывает интерфейс бизнес-логики заявок.
type Service interface {
	Submit(ctx context.Context, email string, fields models.TrainerFields) (*models.InsertResult, error)
	List(ctx context.Context) ([]models.TrainerApplication, error)
	Get(ctx context.Context, id string) (*models.TrainerApplication, error)
	Approve(ctx context.Context, id string) (*models.TrainerProfile, error)
	Reject(ctx context.Context, id string) (*models.DeleteResult, error)
}

type base struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func newBase(log *slog.Logger, service Service) base {
	return base{log: log, service: service, validate: validator.New()}
}

func (b base) logger(r *http.Request, op string) *slog.Logger {
	return b.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Submit обрабатывает подачу заявки.
type Submit struct{ base }

// NewSubmit создает обработчик подачи заявки.
func NewSubmit(log *slog.Logger, service Service) *Submit {
	return &Submit{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Подать заявку на статус тренера
// @Description Email заявителя берется из токена.
// @Tags Applications
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.TrainerFields true "Данные заявки"
// @Success 201 {object} models.InsertResult
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /applications [post]
func (h *Submit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.applications.Submit"
	log := h.logger(r, op)

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Warn("email not found in context")
		response.RenderError(w, r, apperr.ErrUnauthorized)
		return
	}

	var req models.TrainerFields
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.Submit(r.Context(), email, req)
	if err != nil {
		log.Error("failed to submit application", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	log.Info("application submitted", slog.Any("id", res.InsertedID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// List обрабатывает получение списка заявок.
type List struct{ base }

// NewList создает обработчик списка заявок.
func NewList(log *slog.Logger, service Service) *List {
	return &List{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Список заявок
// @Tags Applications
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.TrainerApplication
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /applications [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.applications.List"
	log := h.logger(r, op)

	list, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list applications", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

// Get обрабатывает получение заявки по идентификатору.
type Get struct{ base }

// NewGet создает обработчик получения заявки.
func NewGet(log *slog.Logger, service Service) *Get {
	return &Get{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Заявка по идентификатору
// @Tags Applications
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ObjectID заявки"
// @Success 200 {object} models.TrainerApplication
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Router /applications/{id} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.applications.Get"
	log := h.logger(r, op)

	app, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Info("failed to get application", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, app)
}

// Approve обрабатывает одобрение заявки.
type Approve struct{ base }

// NewApprove создает обработчик одобрения заявки.
func NewApprove(log *slog.Logger, service Service) *Approve {
	return &Approve{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Одобрить заявку
// @Description Переносит заявку в профили тренеров, удаляет заявку и выдает пользователю статус тренера в одной транзакции.
// @Tags Applications
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ObjectID заявки"
// @Success 200 {object} models.TrainerProfile
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Router /applications/{id}/approve [post]
func (h *Approve) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.applications.Approve"
	log := h.logger(r, op)

	id := chi.URLParam(r, "id")
	profile, err := h.service.Approve(r.Context(), id)
	if err != nil {
		log.Error("failed to approve application", slog.String("id", id), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	log.Info("application approved", slog.String("id", id))
	render.JSON(w, r, profile)
}

// Reject обрабатывает отклонение заявки.
type Reject struct{ base }

// NewReject создает обработчик отклонения заявки.
func NewReject(log *slog.Logger, service Service) *Reject {
	return &Reject{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Отклонить заявку
// @Tags Applications
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ObjectID заявки"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Router /applications/{id} [delete]
func (h *Reject) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.applications.Reject"
	log := h.logger(r, op)

	res, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to reject application", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, res)
}
