// Package root содержит служебные обработчики: проверку живости и состояния.
package root

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/monoare/vigor-vista-server/internal/lib/sl"
)

// LivenessText ответ корневого эндпоинта.
const LivenessText = "Vigor Vista is exercising."

// Статусы проверки состояния.
const (
	StatusOK       = "ok"
	StatusDegraded = "unavailable"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse ответ проверки состояния.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Mongo  string `json:"mongo" example:"ok"`
}

// Liveness godoc
// @Summary Проверка живости
// @Tags Service
// @Produce  plain
// @Success 200 {string} string "Vigor Vista is exercising."
// @Router / [get]
func Liveness(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, LivenessText)
}

// Health обрабатывает проверку состояния зависимостей.
type Health struct {
	log     *slog.Logger
	pinger  Pinger
	timeout time.Duration
}

// NewHealth создает обработчик проверки состояния.
func NewHealth(log *slog.Logger, pinger Pinger) *Health {
	return &Health{log: log, pinger: pinger, timeout: 2 * time.Second}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Service
// @Produce  json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.root.Health"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		log.Error("mongo is unavailable", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, HealthResponse{Status: StatusDegraded, Mongo: StatusDegraded})
		return
	}
	render.JSON(w, r, HealthResponse{Status: StatusOK, Mongo: StatusOK})
}
