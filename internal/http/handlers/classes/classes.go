// Package classes реализует HTTP-обработчики каталога занятий.
package classes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monoare/vigor-vista-server/internal/http/request"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Service описывает интерфейс каталога занятий.
type Service interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	GetClass(ctx context.Context, id string) (*models.Class, error)
	CreateClass(ctx context.Context, class models.Class) (*models.InsertResult, error)
}

type base struct {
	log     *slog.Logger
	service Service
}

func (b base) logger(r *http.Request, op string) *slog.Logger {
	return b.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List обрабатывает получение списка занятий.
type List struct{ base }

// NewList создает обработчик списка занятий.
func NewList(log *slog.Logger, service Service) *List {
	return &List{base{log, service}}
}

// ServeHTTP godoc
// @Summary Список занятий
// @Tags Classes
// @Produce  json
// @Success 200 {array} models.Class
// @Router /classes [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.classes.List")

	list, err := h.service.ListClasses(r.Context())
	if err != nil {
		log.Error("failed to list classes", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

// Get обрабатывает получение занятия.
type Get struct{ base }

// NewGet создает обработчик получения занятия.
func NewGet(log *slog.Logger, service Service) *Get {
	return &Get{base{log, service}}
}

// ServeHTTP godoc
// @Summary Занятие по идентификатору
// @Tags Classes
// @Produce  json
// @Param id path string true "ObjectID занятия"
// @Success 200 {object} models.Class
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Занятие не найдено"
// @Router /classes/{id} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.classes.Get")

	class, err := h.service.GetClass(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Info("failed to get class", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, class)
}

// Create обрабатывает добавление занятия.
type Create struct {
	base
	validate *validator.Validate
}

// NewCreate создает обработчик добавления занятия.
func NewCreate(log *slog.Logger, service Service) *Create {
	return &Create{base: base{log, service}, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Добавить занятие
// @Tags Classes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.Class true "Занятие"
// @Success 201 {object} models.InsertResult
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /classes [post]
func (h *Create) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.classes.Create")

	var req models.Class
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	req.ID = primitive.NilObjectID

	res, err := h.service.CreateClass(r.Context(), req)
	if err != nil {
		log.Error("failed to create class", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	log.Info("class created", slog.Any("id", res.InsertedID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}
