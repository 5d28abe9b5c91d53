// Package authcallback реализует HTTP-обработчик возврата с внешнего
// OAuth-провайдера. Ведёт себя как страница после входа: при живой
// сессии возобновляет отложенное намерение, при неудаче входа отправляет
// обратно на форму.
package authcallback

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/continuation"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
)

// AuthService описывает проверку аутентификации.
type AuthService interface {
	CheckAuth(ctx context.Context, token string) (string, bool)
}

// FlowService описывает возобновление потока подписки.
type FlowService interface {
	Resume(ctx context.Context, st *clientstate.State) (*continuation.Outcome, error)
}

// Handler обрабатывает HTTP-запросы OAuth-коллбэка.
type Handler struct {
	log    *slog.Logger
	auth   AuthService
	flow   FlowService
	states *clientstate.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth AuthService, flow FlowService, states *clientstate.Store) *Handler {
	return &Handler{log: log, auth: auth, flow: flow, states: states}
}

// ServeHTTP godoc
// @Summary OAuth-коллбэк
// @Description Завершает внешний вход и возобновляет отложенное намерение, если оно есть.
// @Tags Flow
// @Produce  json
// @Success 200 {object} response.Response "Исход входа"
// @Router /flow/auth-callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flow.authcallback"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := h.states.Load(r)

	userID, ok := h.auth.CheckAuth(r.Context(), state.AuthToken())
	if !ok {
		log.Info("oauth callback without authenticated session")
		render.JSON(w, r, response.Info("sign-in was not completed, please try again", "/login"))
		return
	}
	state.SetUserID(userID)

	outcome, err := h.flow.Resume(r.Context(), state)

	if saveErr := state.Save(r, w); saveErr != nil {
		log.Error("failed to save client state", sl.Err(saveErr))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("sign-in failed, try again"))
		return
	}

	if err != nil {
		log.Error("resume after oauth callback failed", sl.Err(err))
		// Вход состоялся, проблема только с возобновлением — пользователя
		// всё равно ведут внутрь приложения.
		render.JSON(w, r, response.OKWithRedirect("/dashboard"))
		return
	}

	switch outcome.Kind {
	case continuation.OutcomeCheckout:
		render.JSON(w, r, response.OKWithData(map[string]any{
			"authorization_url": outcome.RedirectURL,
			"reference":         outcome.Reference,
		}))
	case continuation.OutcomeAlreadySubscribed:
		render.JSON(w, r, response.Info("you already have an active subscription", outcome.RedirectURL))
	case continuation.OutcomeNotEligible:
		render.JSON(w, r, response.Info(outcome.Message, "/pricing"))
	default:
		render.JSON(w, r, response.OKWithRedirect("/dashboard"))
	}
}
