// Package me реализует HTTP-обработчик проверки текущей сессии.
// Любая неудача проверки означает "не аутентифицирован" — ошибка
// наружу не выбрасывается.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
)

// Service описывает интерфейс проверки аутентификации.
type Service interface {
	CheckAuth(ctx context.Context, token string) (string, bool)
}

// Handler обрабатывает HTTP-запросы проверки сессии.
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
// @Summary Текущая сессия
// @Description Возвращает признак аутентификации и идентификатор пользователя.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Состояние сессии"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := h.states.Load(r)
	userID, ok := h.auth.CheckAuth(r.Context(), state.AuthToken())
	if !ok {
		log.Info("session is not authenticated")
		render.JSON(w, r, response.OKWithData(map[string]any{
			"authenticated": false,
		}))
		return
	}

	// Побочный эффект checkAuth: кешированный user id обновляется.
	if state.UserID() != userID {
		state.SetUserID(userID)
		if err := state.Save(r, w); err != nil {
			log.Warn("failed to refresh cached user id")
		}
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"authenticated": true,
		"user_id":       userID,
	}))
}
