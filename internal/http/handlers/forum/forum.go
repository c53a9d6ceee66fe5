// Package forum реализует HTTP-обработчики форума: постраничный список,
// публикацию постов и голосование за них.
package forum

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
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

// Service описывает интерфейс бизнес-логики форума.
type Service interface {
	List(ctx context.Context, p models.Pagination) (models.Page[models.ForumPost], error)
	Create(ctx context.Context, email string, post models.ForumPost) (*models.InsertResult, error)
	Vote(ctx context.Context, dir models.VoteDirection, postID, email string) (*models.ForumPost, error)
}

func logger(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List обрабатывает постраничный список постов.
type List struct {
	log     *slog.Logger
	service Service
}

// NewList создает обработчик списка постов.
func NewList(log *slog.Logger, service Service) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Посты форума
// @Description Страница постов и общее количество. Некорректные page и size заменяются значениями по умолчанию.
// @Tags Forum
// @Produce  json
// @Param page query int false "Номер страницы с нуля" default(0)
// @Param size query int false "Размер страницы, не больше 100" default(10)
// @Success 200 {object} models.Page[models.ForumPost]
// @Router /forums [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger(h.log, r, "handlers.forum.List")

	page, err := h.service.List(r.Context(), request.Pagination(r))
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// Create обрабатывает публикацию поста.
type Create struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// NewCreate создает обработчик публикации поста.
func NewCreate(log *slog.Logger, service Service) *Create {
	return &Create{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Опубликовать пост
// @Description Автор берется из токена, счетчики голосов обнуляются.
// @Tags Forum
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.ForumPost true "Пост"
// @Success 201 {object} models.InsertResult
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /forums [post]
func (h *Create) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger(h.log, r, "handlers.forum.Create")

	email, ok := middlewarectx.EmailFromContext(r.Context())
	if !ok {
		log.Warn("email not found in context")
		response.RenderError(w, r, apperr.ErrUnauthorized)
		return
	}

	var req models.ForumPost
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	req.ID = primitive.NilObjectID

	res, err := h.service.Create(r.Context(), email, req)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	log.Info("post created", slog.Any("id", res.InsertedID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// Vote обрабатывает голос за пост в заданном направлении.
type Vote struct {
	log       *slog.Logger
	service   Service
	validate  *validator.Validate
	direction models.VoteDirection
}

// NewUpVote создает обработчик голоса за пост.
func NewUpVote(log *slog.Logger, service Service) *Vote {
	return &Vote{log: log, service: service, validate: validator.New(), direction: models.VoteUp}
}

// NewDownVote создает обработчик голоса против поста.
func NewDownVote(log *slog.Logger, service Service) *Vote {
	return &Vote{log: log, service: service, validate: validator.New(), direction: models.VoteDown}
}

// ServeHTTP godoc
// @Summary Голос за пост
// @Description Повторный голос того же email в том же направлении отклоняется.
// @Tags Forum
// @Accept  json
// @Produce  json
// @Param postId path string true "ObjectID поста"
// @Param request body models.VoteRequest true "Email голосующего"
// @Success 200 {object} models.ForumPost
// @Failure 400 {object} response.ErrorResponse "Повторный голос или некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Router /forums/{postId}/upVote [patch]
// @Router /forums/{postId}/downVote [patch]
func (h *Vote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger(h.log, r, "handlers.forum.Vote").With(slog.String("direction", string(h.direction)))

	var req models.VoteRequest
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	postID := chi.URLParam(r, "postId")
	post, err := h.service.Vote(r.Context(), h.direction, postID, req.Email)
	if err != nil {
		log.Info("vote rejected", slog.String("post_id", postID), sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, post)
}
