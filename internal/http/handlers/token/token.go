// Package token реализует выпуск токена доступа по claims клиента.
package token

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/http/request"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/jwt"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
)

// MsgMissingEmail сообщение при отсутствии email в claims.
const MsgMissingEmail = "claims must contain email"

// Generator выпускает подписанный токен.
type Generator interface {
	GenerateToken(claims map[string]any) (string, error)
}

// Handler обрабатывает выпуск токена.
type Handler struct {
	log       *slog.Logger
	generator Generator
}

// New создает обработчик выпуска токена.
func New(log *slog.Logger, generator Generator) *Handler {
	return &Handler{log: log, generator: generator}
}

// ServeHTTP godoc
// @Summary Выпуск токена доступа
// @Description Подписывает переданные claims. Поле email обязательно, срок жизни задается сервером.
// @Tags Auth
// @Accept  json
// @Produce  plain
// @Param request body object true "Claims клиента, например {\"email\":\"a@x.com\"}"
// @Success 200 {string} string "Подписанный токен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нет email"
// @Router /jwt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.token.Issue"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var claims map[string]any
	if err := render.DecodeJSON(r.Body, &claims); err != nil {
		if errors.Is(err, io.EOF) {
			response.RenderKind(w, r, apperr.KindInvalidRequest, request.MsgEmptyBody)
			return
		}
		log.Info("failed to decode claims", sl.Err(err))
		response.RenderKind(w, r, apperr.KindInvalidRequest, "")
		return
	}

	token, err := h.generator.GenerateToken(claims)
	if errors.Is(err, jwt.ErrMissingEmail) {
		log.Info("claims without email")
		response.RenderKind(w, r, apperr.KindInvalidRequest, MsgMissingEmail)
		return
	}
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	// клиент ожидает токен строкой, без JSON-обертки
	render.PlainText(w, r, token)
}
