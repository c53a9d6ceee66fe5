// Package request содержит разбор общих параметров HTTP-запросов:
// JSON-тела с валидацией и параметров пагинации.
package request

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Параметры пагинации по умолчанию.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// MsgEmptyBody сообщение об отсутствующем теле запроса.
const MsgEmptyBody = "request body is empty"

// Decode читает JSON-тело запроса в v и проверяет его по тегам validate.
// При ошибке отправляет ответ клиенту и возвращает false.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			log.Info("request body is empty")
			response.RenderKind(w, r, apperr.KindInvalidRequest, MsgEmptyBody)
			return false
		}
		log.Info("failed to decode request body", sl.Err(err))
		response.RenderKind(w, r, apperr.KindInvalidRequest, "")
		return false
	}

	if err := validate.Struct(v); err != nil {
		log.Info("invalid request", sl.Err(err))
		response.RenderValidation(w, r, err)
		return false
	}
	return true
}

// Pagination разбирает параметры page и size. Нечисловой или отрицательный page
// становится 0, нечисловой или неположительный size становится DefaultPageSize,
// size больше MaxPageSize ограничивается MaxPageSize, page ограничивается так,
// чтобы page*size помещалось в int64.
func Pagination(r *http.Request) models.Pagination {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if maxPage := math.MaxInt64 / int64(size); int64(page) > maxPage {
		page = int(maxPage)
	}
	return models.Pagination{Page: page, Size: size}
}
