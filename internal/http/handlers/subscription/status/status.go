// Package status реализует HTTP-обработчик проверки статуса подписки.
// Ошибка проверки трактуется fail-closed: доступа нет, текст ошибки —
// только вторичная информация для отображения.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Service описывает интерфейс проверки статуса.
type Service interface {
	CheckStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error)
}

// Handler обрабатывает HTTP-запросы статуса подписки.
type Handler struct {
	log  *slog.Logger
	subs Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subs Service) *Handler {
	return &Handler{log: log, subs: subs}
}

// ServeHTTP godoc
// @Summary Статус подписки
// @Description Возвращает снимок биллингового состояния пользователя.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} models.SubscriptionStatus "Снимок статуса"
// @Failure 502 {object} response.ErrorResponse "Бэкенд недоступен"
// @Router /subscription/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)

	status, err := h.subs.CheckStatus(r.Context(), userID)
	if err != nil {
		log.Error("subscription status check failed", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to check subscription status, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(status))
}
