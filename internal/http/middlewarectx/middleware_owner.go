package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/http/response"
)

// OwnerMiddleware пропускает запрос, только если email из токена в точности совпадает
// со значением параметра пути param. Email в токене уже приведен к нижнему регистру,
// поэтому путь с другим регистром отклоняется. Должен стоять после JWTMiddleware.
func OwnerMiddleware(param string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OwnerMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			email, ok := EmailFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				response.RenderError(w, r, apperr.ErrUnauthorized)
				return
			}

			owner := chi.URLParam(r, param)
			if owner != email {
				log.Info("ownership check failed", slog.String("path_email", owner))
				response.RenderError(w, r, apperr.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
