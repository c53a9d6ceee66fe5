// Package users реализует HTTP-обработчики учетных записей пользователей:
// регистрацию, просмотр, флаги участия, редактирование профиля и
// повышение до тренера.
package users

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

// Service описывает интерфейс бизнес-логики пользователей.
type Service interface {
	Create(ctx context.Context, user models.User) (*models.InsertResult, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, email string) (*models.User, error)
	Member(ctx context.Context, email string) (*models.Membership, error)
	UpdateProfile(ctx context.Context, email string, upd models.UserProfileUpdate) (*models.UpdateResult, error)
	Promote(ctx context.Context, email string) (*models.UpdateResult, error)
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

// Create обрабатывает регистрацию пользователя.
type Create struct{ base }

// NewCreate создает обработчик регистрации.
func NewCreate(log *slog.Logger, service Service) *Create {
	return &Create{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя, если email еще не зарегистрирован. Для существующего email возвращает insertedId = null.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.User true "Данные пользователя"
// @Success 201 {object} models.InsertResult "Пользователь создан"
// @Success 200 {object} models.InsertResult "Пользователь уже существует"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /users [post]
func (h *Create) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.Create"
	log := h.logger(r, op)

	var req models.User
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}
	req.ID = primitive.NilObjectID

	res, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	if res.InsertedID == nil {
		log.Info("user already present", slog.String("email", req.Email))
		render.JSON(w, r, res)
		return
	}
	log.Info("user created", slog.Any("id", res.InsertedID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// List обрабатывает получение списка пользователей.
type List struct{ base }

// NewList создает обработчик списка пользователей.
func NewList(log *slog.Logger, service Service) *List {
	return &List{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.List"
	log := h.logger(r, op)

	list, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

// Get обрабатывает получение пользователя по email.
type Get struct{ base }

// NewGet создает обработчик получения пользователя.
func NewGet(log *slog.Logger, service Service) *Get {
	return &Get{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Пользователь по email
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param email path string true "Email пользователя"
// @Success 200 {object} models.User
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужой email"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{email} [get]
func (h *Get) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.Get"
	log := h.logger(r, op)

	user, err := h.service.Get(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		log.Info("failed to get user", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, user)
}

// Member обрабатывает получение флагов тренера и участника.
type Member struct{ base }

// NewMember создает обработчик флагов участия.
func NewMember(log *slog.Logger, service Service) *Member {
	return &Member{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Флаги тренера и оплаченного участника
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param email path string true "Email пользователя"
// @Success 200 {object} models.Membership
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужой email"
// @Router /users/member/{email} [get]
func (h *Member) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.Member"
	log := h.logger(r, op)

	m, err := h.service.Member(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		log.Error("failed to get membership", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, m)
}

// UpdateProfile обрабатывает изменение профиля пользователя.
type UpdateProfile struct{ base }

// NewUpdateProfile создает обработчик изменения профиля.
func NewUpdateProfile(log *slog.Logger, service Service) *UpdateProfile {
	return &UpdateProfile{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Изменить профиль
// @Description Изменяет имя и фото пользователя, создавая запись при отсутствии.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param email path string true "Email пользователя"
// @Param request body models.UserProfileUpdate true "Новые данные профиля"
// @Success 200 {object} models.UpdateResult
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужой email"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /users/update/{email} [patch]
func (h *UpdateProfile) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.UpdateProfile"
	log := h.logger(r, op)

	var req models.UserProfileUpdate
	if !request.Decode(w, r, log, h.validate, &req) {
		return
	}

	res, err := h.service.UpdateProfile(r.Context(), chi.URLParam(r, "email"), req)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, res)
}

// Promote обрабатывает повышение пользователя до тренера.
type Promote struct{ base }

// NewPromote создает обработчик повышения до тренера.
func NewPromote(log *slog.Logger, service Service) *Promote {
	return &Promote{newBase(log, service)}
}

// ServeHTTP godoc
// @Summary Выдать статус тренера
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Param email path string true "Email пользователя"
// @Success 200 {object} models.UpdateResult
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/trainer/{email} [patch]
func (h *Promote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.Promote"
	log := h.logger(r, op)

	res, err := h.service.Promote(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		log.Error("failed to promote user", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, res)
}
