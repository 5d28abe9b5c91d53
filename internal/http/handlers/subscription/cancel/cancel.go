// Package cancel реализует HTTP-обработчик отмены подписки.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
)

// Service описывает интерфейс отмены подписки.
type Service interface {
	CancelSubscription(ctx context.Context, userID string) error
}

// Handler обрабатывает HTTP-запросы отмены подписки.
type Handler struct {
	log  *slog.Logger
	subs Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subs Service) *Handler {
	return &Handler{log: log, subs: subs}
}

// ServeHTTP godoc
// @Summary Отмена подписки
// @Description Отменяет автопродление; доступ сохраняется до конца оплаченного периода.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} response.Response "Подписка отменена"
// @Failure 502 {object} response.ErrorResponse "Бэкенд недоступен"
// @Router /subscription/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.cancel"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)

	if err := h.subs.CancelSubscription(r.Context(), userID); err != nil {
		log.Error("subscription cancel failed", sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(apiErr.Message))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to cancel subscription, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "subscription canceled",
	}))
}
