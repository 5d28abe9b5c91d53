// Package bookhubweb предоставляет маршруты для основного приложения.
package bookhubweb

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/continuation"
	authgateway "github.com/magabrotheeeer/bookhub-web/internal/gateway/auth"
	cardgateway "github.com/magabrotheeeer/bookhub-web/internal/gateway/card"
	cataloggateway "github.com/magabrotheeeer/bookhub-web/internal/gateway/catalog"
	subsgateway "github.com/magabrotheeeer/bookhub-web/internal/gateway/subscription"
	"github.com/magabrotheeeer/bookhub-web/internal/guard"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/auth/confirmation"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/auth/refresh"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/auth/register"
	cardinitialize "github.com/magabrotheeeer/bookhub-web/internal/http/handlers/card/initialize"
	cardlist "github.com/magabrotheeeer/bookhub-web/internal/http/handlers/card/list"
	cardremove "github.com/magabrotheeeer/bookhub-web/internal/http/handlers/card/remove"
	cardsetdefault "github.com/magabrotheeeer/bookhub-web/internal/http/handlers/card/setdefault"
	cardverify "github.com/magabrotheeeer/bookhub-web/internal/http/handlers/card/verify"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/bookdetail"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/dashboard"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/download"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/genrebooks"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/genres"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/magazines"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/releases"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/catalog/search"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/flow/authcallback"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/flow/paymentsuccess"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/flow/resume"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/password/change"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/password/forgot"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/password/reset"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/subscription/cancel"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/subscription/eligibility"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/subscription/start"
	"github.com/magabrotheeeer/bookhub-web/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/bookhub-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bookhub-web/internal/sessioncache"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, states *clientstate.Store,
	accessGuard *guard.Guard, flow *continuation.Controller, poller *continuation.Poller,
	authGateway *authgateway.Gateway, subsGateway *subsgateway.Gateway,
	catalogGateway *cataloggateway.Gateway, cardGateway *cardgateway.Gateway,
	sessions *sessioncache.Cache) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authGateway, states).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authGateway, states).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger, authGateway, states).ServeHTTP)
		r.Get("/auth/me", me.New(logger, authGateway, states).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authGateway, states).ServeHTTP)
		r.Post("/auth/confirmation/resend", confirmation.New(logger, authGateway).ServeHTTP)
		r.Get("/auth/confirmation/status", confirmation.NewStatus(logger, authGateway).ServeHTTP)
		r.Post("/password/forgot", forgot.New(logger, authGateway).ServeHTTP)
		r.Post("/password/reset", reset.New(logger, authGateway).ServeHTTP)

		// Поток подписки: старт и возврат открыты — неаутентифицированный
		// клик записывает намерение, а не получает отказ.
		r.Post("/subscription/start", start.New(logger, flow, states).ServeHTTP)
		r.Get("/flow/resume", resume.New(logger, flow, states).ServeHTTP)
		r.Get("/flow/payment-success", paymentsuccess.New(logger, poller, states).ServeHTTP)
		r.Get("/flow/auth-callback", authcallback.New(logger, authGateway, flow, states).ServeHTTP)

		// Каталог открыт для просмотра без входа
		r.Get("/catalog/search", search.New(logger, catalogGateway).ServeHTTP)
		r.Get("/catalog/new-releases", releases.New(logger, catalogGateway).ServeHTTP)
		r.Get("/catalog/genres", genres.New(logger, catalogGateway).ServeHTTP)
		r.Get("/catalog/genres/{slug}/books", genrebooks.New(logger, catalogGateway).ServeHTTP)
		r.Get("/catalog/magazines", magazines.New(logger, catalogGateway).ServeHTTP)
		r.Get("/catalog/books/{slug}", bookdetail.New(logger, catalogGateway).ServeHTTP)

		// Группа с аутентификацией без требования подписки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Protect(states, accessGuard, false, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/password/change", change.New(logger, authGateway).ServeHTTP)
			r.Get("/subscription/status", status.New(logger, subsGateway).ServeHTTP)
			r.Get("/subscription/eligibility", eligibility.New(logger, subsGateway).ServeHTTP)
			r.Post("/subscription/cancel", cancel.New(logger, subsGateway).ServeHTTP)
			r.Get("/cards", cardlist.New(logger, cardGateway).ServeHTTP)
			r.Post("/cards/initialize", cardinitialize.New(logger, cardGateway, sessions).ServeHTTP)
			r.Post("/cards/set-default", cardsetdefault.New(logger, cardGateway).ServeHTTP)
			r.Post("/cards/remove", cardremove.New(logger, cardGateway).ServeHTTP)
			r.Post("/cards/verify", cardverify.New(logger, cardGateway).ServeHTTP)
		})

		// Группа с требованием активной подписки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Protect(states, accessGuard, true, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/dashboard", dashboard.New(logger, catalogGateway).ServeHTTP)
			r.Post("/downloads", download.New(logger, catalogGateway).ServeHTTP)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
