package vigorvista

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/monoare/vigor-vista-server/internal/docs"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/applications"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/classes"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/forum"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/gallery"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/payments"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/root"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/subscribe"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/token"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/trainers"
	"github.com/monoare/vigor-vista-server/internal/http/handlers/users"
	"github.com/monoare/vigor-vista-server/internal/http/middlewarectx"
	"github.com/monoare/vigor-vista-server/internal/lib/jwt"
	"github.com/monoare/vigor-vista-server/internal/metrics"
)

// Catalog объединяет каталоги тренеров и занятий.
type Catalog interface {
	trainers.Service
	classes.Service
}

// Dependencies зависимости HTTP-маршрутов.
type Dependencies struct {
	Pinger        root.Pinger
	Tokens        jwt.Maker
	Users         users.Service
	Subscriptions subscribe.Service
	Applications  applications.Service
	Catalog       Catalog
	Forum         forum.Service
	Payments      payments.Service
	Gallery       gallery.Service
	Limiter       *middlewarectx.ClientLimiter
}

// RegisterRoutes регистрирует все маршруты приложения.
// middleware.URLFormat не подключается: он обрезает ".com" у email в пути.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Dependencies) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middlewarectx.Recoverer(logger),
		metrics.Middleware,
	)

	guard := middlewarectx.JWTMiddleware(d.Tokens, logger)
	owner := middlewarectx.OwnerMiddleware("email", logger)
	limit := middlewarectx.RateLimitMiddleware(d.Limiter, logger)

	// Открытые конечные точки
	r.Get("/", root.Liveness)
	r.Get("/health", root.NewHealth(logger, d.Pinger).ServeHTTP)
	r.Post("/jwt", token.New(logger, d.Tokens).ServeHTTP)
	r.Post("/users", users.NewCreate(logger, d.Users).ServeHTTP)
	r.Post("/subscribe", subscribe.NewSubscribe(logger, d.Subscriptions).ServeHTTP)
	r.Get("/trainers", trainers.NewList(logger, d.Catalog).ServeHTTP)
	r.Get("/trainers/{id}", trainers.NewGet(logger, d.Catalog).ServeHTTP)
	r.Put("/trainers/{id}", trainers.NewUpdatePayment(logger, d.Catalog).ServeHTTP)
	r.Get("/classes", classes.NewList(logger, d.Catalog).ServeHTTP)
	r.Get("/classes/{id}", classes.NewGet(logger, d.Catalog).ServeHTTP)
	r.Get("/forums", forum.NewList(logger, d.Forum).ServeHTTP)
	r.Get("/gallery", gallery.NewList(logger, d.Gallery).ServeHTTP)

	// Группа с ограничением частоты
	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Patch("/forums/{postId}/upVote", forum.NewUpVote(logger, d.Forum).ServeHTTP)
		r.Patch("/forums/{postId}/downVote", forum.NewDownVote(logger, d.Forum).ServeHTTP)
		r.Post("/create-payment-intent", payments.NewCreateIntent(logger, d.Payments).ServeHTTP)
	})

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/users", users.NewList(logger, d.Users).ServeHTTP)
		r.Patch("/users/trainer/{email}", users.NewPromote(logger, d.Users).ServeHTTP)
		r.Get("/subscribers", subscribe.NewList(logger, d.Subscriptions).ServeHTTP)
		r.Post("/classes", classes.NewCreate(logger, d.Catalog).ServeHTTP)
		r.Post("/forums", forum.NewCreate(logger, d.Forum).ServeHTTP)
		r.Post("/payments", payments.NewRecord(logger, d.Payments).ServeHTTP)
		r.Get("/payments", payments.NewList(logger, d.Payments).ServeHTTP)

		r.Route("/applications", func(r chi.Router) {
			r.Post("/", applications.NewSubmit(logger, d.Applications).ServeHTTP)
			r.Get("/", applications.NewList(logger, d.Applications).ServeHTTP)
			r.Get("/{id}", applications.NewGet(logger, d.Applications).ServeHTTP)
			r.Delete("/{id}", applications.NewReject(logger, d.Applications).ServeHTTP)
			r.Post("/{id}/approve", applications.NewApprove(logger, d.Applications).ServeHTTP)
		})

		// Только владелец email из пути
		r.Group(func(r chi.Router) {
			r.Use(owner)
			r.Get("/users/{email}", users.NewGet(logger, d.Users).ServeHTTP)
			r.Get("/users/member/{email}", users.NewMember(logger, d.Users).ServeHTTP)
			r.Patch("/users/update/{email}", users.NewUpdateProfile(logger, d.Users).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
