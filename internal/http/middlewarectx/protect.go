// Package middlewarectx содержит HTTP middleware защиты маршрутов.
//
// Protect перед каждым запросом защищённого маршрута заново выполняет
// решение Route Guard (аутентификация, при необходимости — подписка) и
// в случае отказа возвращает редирект на вход или на оформление.
// Пока решение не вынесено, защищённый контент не отдаётся.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/guard"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// AuthToken — ключ для токена аутентификации в контексте
	AuthToken Key = "auth_token"
)

// Protect возвращает middleware, пересчитывающий решение guard на каждый
// запрос. При допуске идентификатор пользователя и токен кладутся в
// контекст для обработчиков.
func Protect(store *clientstate.Store, g *guard.Guard, requireSubscription bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Protect"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			state := store.Load(r)
			decision, userID := g.Check(r.Context(), state.AuthToken(), requireSubscription)
			switch decision {
			case guard.DecisionRedirectLogin:
				log.Info("access denied: authentication required")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Info("please log in to continue", "/login"))
				return
			case guard.DecisionRedirectUpgrade:
				log.Info("access denied: subscription required")
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Info("an active subscription is required", "/start-trial"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, userID)
			ctx = context.WithValue(ctx, AuthToken, state.AuthToken())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
