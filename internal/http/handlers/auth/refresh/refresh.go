// Package refresh реализует HTTP-обработчик обновления токена сессии.
// Вызывается клиентом, когда токен близок к истечению или CheckAuth
// отклонил его локально; неудача обновления означает повторный вход.
package refresh

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Service описывает интерфейс обновления токена.
type Service interface {
	RefreshToken(ctx context.Context, token string) (*models.Session, error)
}

// Handler обрабатывает HTTP-запросы обновления токена.
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
// @Summary Обновление токена сессии
// @Description Меняет токен на свежий и перезаписывает клиентское состояние.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Токен обновлён"
// @Failure 401 {object} response.Response "Сессию обновить нельзя, нужен вход"
// @Router /auth/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := h.states.Load(r)
	token := state.AuthToken()
	if token == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Info("please log in to continue", "/login"))
		return
	}

	session, err := h.auth.RefreshToken(r.Context(), token)
	if err != nil {
		log.Error("token refresh failed", sl.Err(err))
		if _, ok := backendapi.AsAPIError(err); ok {
			// Бэкенд отверг токен: локальная сессия мертва, чистим её,
			// чтобы клиент не зациклился на обновлении.
			state.ClearSession()
			if saveErr := state.Save(r, w); saveErr != nil {
				log.Error("failed to clear client state", sl.Err(saveErr))
			}
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Info("please log in to continue", "/login"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to refresh session, try again"))
		return
	}

	state.SetUserID(session.UserID)
	state.SetAuthToken(session.AccessToken)
	if err := state.Save(r, w); err != nil {
		log.Error("failed to persist client state", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to refresh session, try again"))
		return
	}

	log.Info("session token refreshed", slog.String("user_id", session.UserID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt,
	}))
}
