// Package logout реализует HTTP-обработчик выхода пользователя.
//
// Клиентское состояние стирается безусловно, даже если сетевой вызов к
// бэкенду не удался: кешированные флаги не должны пережить мёртвую
// сессию.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
)

// Service описывает интерфейс завершения сессии.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log    *slog.Logger
	auth   Service
	states *clientstate.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service, states *clientstate.Store) *Handler {
	return &Handler{log: log, auth: auth, states: states}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Завершает серверную сессию и безусловно стирает клиентское состояние.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Выход выполнен"
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := h.states.Load(r)
	token := state.AuthToken()

	if err := h.auth.Logout(r.Context(), token); err != nil {
		// Ошибка сети не отменяет локальную очистку.
		log.Warn("backend logout failed", sl.Err(err))
	}

	state.ClearSession()
	if err := state.Save(r, w); err != nil {
		log.Error("failed to clear client state", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to log out, try again"))
		return
	}

	log.Info("logout complete")
	render.JSON(w, r, response.OKWithRedirect("/"))
}
