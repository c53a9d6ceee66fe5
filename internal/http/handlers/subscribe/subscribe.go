// Package subscribe реализует HTTP-обработчики подписки на рассылку.
package subscribe

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monoare/vigor-vista-server/internal/http/request"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Subscribe(ctx context.Context, sub models.Subscription) (*models.InsertResult, error)
	List(ctx context.Context) ([]models.Subscription, error)
}

// Subscribe обрабатывает оформление подписки.
type Subscribe struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewSubscribe создает обработчик оформления подписки.
func NewSubscribe(log *slog.Logger, service Service) *Subscribe {
	return &Subscribe{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Подписка на рассылку
// @Description Создает подписку, если email еще не подписан. Для повторной подписки возвращает insertedId = null.
// @Tags Subscribers
// @Accept  json
// @Produce  json
// @Param request body models.Subscription true "Данные подписчика"
// @Success 201 {object} models.InsertResult "Подписка создана"
// @Success 200 {object} models.InsertResult "Уже подписан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /subscribe [post]
func (h *Subscribe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscribe.Subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Subscription
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	req.ID = primitive.NilObjectID

	res, err := h.service.Subscribe(r.Context(), req)
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	if res.InsertedID != nil {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, res)
}

// List обрабатывает получение списка подписчиков.
type List struct {
	log     *slog.Logger
	service Service
}

// NewList создает обработчик списка подписчиков.
func NewList(log *slog.Logger, service Service) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список подписчиков
// @Tags Subscribers
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /subscribers [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscribe.List"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}
