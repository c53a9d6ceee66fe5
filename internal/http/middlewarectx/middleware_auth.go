// Package middlewarectx содержит HTTP middleware проверки доступа.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке Authorization
// и в случае успеха добавляет в контекст email пользователя и все claims токена.
// OwnerMiddleware дополнительно требует, чтобы email из токена совпадал с email
// в пути запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/monoare/vigor-vista-server/internal/apperr"
	"github.com/monoare/vigor-vista-server/internal/http/response"
	"github.com/monoare/vigor-vista-server/internal/lib/jwt"
	"github.com/monoare/vigor-vista-server/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Email — ключ для email пользователя в контексте
	Email Key = "email"
	// Claims — ключ для claims токена в контексте
	Claims Key = "claims"
)

// TokenParser описывает проверку токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.Claims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен в заголовке Authorization.
//
// Если токен валиден, добавляет email и claims в контекст запроса,
// иначе отвечает 401 Unauthorized, не вызывая следующий обработчик.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Info("missing authorization header")
				response.RenderError(w, r, apperr.ErrUnauthorized)
				return
			}
			scheme, tokenStr, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
				log.Info("invalid authorization header")
				response.RenderError(w, r, apperr.ErrUnauthorized)
				return
			}

			claims, err := parser.ParseToken(strings.TrimSpace(tokenStr))
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				response.RenderError(w, r, apperr.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), Email, claims.Email)
			ctx = context.WithValue(ctx, Claims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext возвращает email аутентифицированного пользователя.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(Email).(string)
	return email, ok && email != ""
}

// ClaimsFromContext возвращает claims проверенного токена.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(Claims).(*jwt.Claims)
	return claims, ok && claims != nil
}
