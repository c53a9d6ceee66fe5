// Package gallery реализует HTTP-обработчик галереи изображений.
package gallery

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/monoare/vigor-vista-server/internal/http/request"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
	"github.com/monoare/vigor-vista-server/internal/models"
)

// Service отдает страницы галереи.
type Service interface {
	List(ctx context.Context, p models.Pagination) (models.Page[models.GalleryImage], error)
}

// List обрабатывает постраничный список изображений.
type List struct {
	log     *slog.Logger
	service Service
}

// NewList создает обработчик галереи.
func NewList(log *slog.Logger, service Service) *List {
	return &List{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Галерея
// @Tags Gallery
// @Produce  json
// @Param page query int false "Номер страницы с нуля" default(0)
// @Param size query int false "Размер страницы, не больше 100" default(10)
// @Success 200 {object} models.Page[models.GalleryImage]
// @Router /gallery [get]
func (h *List) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gallery.List"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := h.service.List(r.Context(), request.Pagination(r))
	if err != nil {
		log.Error("failed to list gallery", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}
