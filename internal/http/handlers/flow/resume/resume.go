// Package resume реализует HTTP-обработчик возобновления отложенного
// намерения после входа. Вызывается страницей, на которую пользователь
// попадает после аутентификации; повторный вызов безопасен — попытка
// расходуется не более одного раза на записанное намерение.
package resume

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/continuation"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
)

// Service описывает интерфейс возобновления потока подписки.
type Service interface {
	Resume(ctx context.Context, st *clientstate.State) (*continuation.Outcome, error)
}

// Handler обрабатывает HTTP-запросы возобновления потока.
type Handler struct {
	log    *slog.Logger
	flow   Service
	states *clientstate.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, flow Service, states *clientstate.Store) *Handler {
	return &Handler{log: log, flow: flow, states: states}
}

// ServeHTTP godoc
// @Summary Возобновление потока подписки
// @Description Проверяет отложенное намерение и возобновляет его не более одного раза.
// @Tags Flow
// @Produce  json
// @Success 200 {object} response.Response "Исход возобновления"
// @Router /flow/resume [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flow.resume"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := h.states.Load(r)
	outcome, err := h.flow.Resume(r.Context(), state)

	if saveErr := state.Save(r, w); saveErr != nil {
		log.Error("failed to save client state", sl.Err(saveErr))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to resume subscription flow, try again"))
		return
	}

	if err != nil {
		log.Error("subscription flow resume failed", sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok && apiErr.IsBusinessRule() {
			render.JSON(w, r, response.Info(apiErr.Message, "/pricing"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to resume subscription flow, try again"))
		return
	}

	switch outcome.Kind {
	case continuation.OutcomeNone:
		render.JSON(w, r, response.OKWithData(map[string]any{
			"resumed": false,
		}))
	case continuation.OutcomeAbandoned:
		render.JSON(w, r, response.Info("please log in to continue", outcome.RedirectURL))
	case continuation.OutcomeAlreadySubscribed:
		render.JSON(w, r, response.Info("you already have an active subscription", outcome.RedirectURL))
	case continuation.OutcomeNotEligible:
		render.JSON(w, r, response.Info(outcome.Message, "/pricing"))
	case continuation.OutcomeCheckout:
		render.JSON(w, r, response.OKWithData(map[string]any{
			"authorization_url": outcome.RedirectURL,
			"reference":         outcome.Reference,
		}))
	default:
		render.JSON(w, r, response.OKWithRedirect("/dashboard"))
	}
}
