// Package paymentsuccess реализует HTTP-обработчик страницы возврата с
// внешней оплаты. Активация приходит через webhook провайдера и может
// запаздывать, поэтому статус опрашивается с бюджетом попыток; исчерпание
// бюджета — не отказ, а "активация ещё идёт".
package paymentsuccess

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

// Service описывает интерфейс ожидания активации подписки.
type Service interface {
	Wait(ctx context.Context, userID string) (continuation.PollResult, error)
}

// Handler обрабатывает HTTP-запросы страницы успешной оплаты.
type Handler struct {
	log    *slog.Logger
	poller Service
	states *clientstate.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, poller Service, states *clientstate.Store) *Handler {
	return &Handler{log: log, poller: poller, states: states}
}

// ServeHTTP godoc
// @Summary Ожидание активации после оплаты
// @Description Опрашивает статус подписки до подтверждения активации или исчерпания бюджета.
// @Tags Flow
// @Produce  json
// @Success 200 {object} response.Response "Активация подтверждена либо ещё идёт"
// @Router /flow/payment-success [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flow.paymentsuccess"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := h.states.Load(r)
	userID := state.UserID()
	if userID == "" {
		log.Info("payment return without cached user")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Info("please log in to continue", "/login"))
		return
	}

	result, err := h.poller.Wait(r.Context(), userID)
	if err != nil {
		// Клиент ушёл со страницы, ответ уже никому не нужен.
		log.Warn("activation polling interrupted", sl.Err(err))
		return
	}

	if result == continuation.PollActivated {
		render.JSON(w, r, response.OKWithRedirect("/dashboard"))
		return
	}
	render.JSON(w, r, response.Info(
		"your subscription is being activated, this may take a moment", "/dashboard"))
}
