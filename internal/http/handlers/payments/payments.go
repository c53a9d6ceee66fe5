// Package payments реализует HTTP-обработчики платежей: создание платежного
// намерения у провайдера, запись оплаты и историю оплат.
package payments

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/http/middlewarectx"
	"github.com/monoare/vigor-vista-server/internal/http/request"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
	Record(ctx context.Context, email string, p models.Payment) (*models.InsertResult, error)
	List(ctx context.Context, email string) ([]models.Payment, error)
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

// CreateIntent обрабатывает создание платежного намерения.
type CreateIntent struct{ base }

// NewCreateIntent создает обработчик платежного намерения.
func NewCreateIntent(log *slog.Logger, service Service) *CreateIntent {
	return &CreateIntent{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Создать платежное намерение
// @Description Переводит цену в минимальные единицы валюты и возвращает client secret провайдера.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.PaymentIntentRequest true "Цена"
// @Success 200 {object} models.PaymentIntentResponse
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 502 {object} response.ErrorResponse "Ошибка платежного провайдера"
// @Router /create-payment-intent [post]
func (h *CreateIntent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payments.CreateIntent"
	log := h.logger(r, op)

	var req models.PaymentIntentRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	secret, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		log.Error("failed to create payment intent", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, models.PaymentIntentResponse{ClientSecret: secret})
}

// Record обрабатывает запись оплаты.
type Record struct{ base }

// NewRecord создает обработчик записи оплаты.
func NewRecord(log *slog.Logger, service Service) *Record {
	return &Record{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Записать оплату
// @Description Сохраняет оплату от имени владельца токена и отмечает его оплаченным участником.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.Payment true "Оплата"
// @Success 201 {object} models.InsertResult
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /payments [post]
func (h *Record) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payments.Record"
	log := h.logger(r, op)

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Warn("email not found in context")
		response.RenderError(w, r, apperr.ErrUnauthorized)
		return
	}

	var req models.Payment
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	req.ID = primitive.NilObjectID

	res, err := h.service.Record(r.Context(), email, req)
	if err != nil {
		log.Error("failed to record payment", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	log.Info("payment recorded", slog.Any("id", res.InsertedID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// List обрабатывает получение истории оплат.
type List struct{ base }

// NewList создает обработчик истории оплат.
func NewList(log *slog.Logger, service Service) *List {
	return &List{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary История оплат
// @Description Без параметра email возвращает все оплаты.
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Param email query string false "Фильтр по email"
// @Success 200 {array} models.Payment
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /payments [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payments.List"
	log := h.logger(r, op)

	list, err := h.service.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}
