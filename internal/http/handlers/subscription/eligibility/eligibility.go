// Package eligibility реализует HTTP-обработчик проверки права на
// пробный период.
package eligibility

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

// Service описывает интерфейс проверки права на пробный период.
type Service interface {
	CheckTrialEligibility(ctx context.Context, userID string) (*models.TrialEligibility, error)
}

// Handler обрабатывает HTTP-запросы проверки права на пробный период.
type Handler struct {
	log  *slog.Logger
	subs Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subs Service) *Handler {
	return &Handler{log: log, subs: subs}
}

// ServeHTTP godoc
// @Summary Право на пробный период
// @Description Отвечает, доступен ли пользователю бесплатный пробный период.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} models.TrialEligibility "Результат проверки"
// @Failure 502 {object} response.ErrorResponse "Бэкенд недоступен"
// @Router /subscription/eligibility [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.eligibility"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)

	eligibility, err := h.subs.CheckTrialEligibility(r.Context(), userID)
	if err != nil {
		log.Error("trial eligibility check failed", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to check trial eligibility, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(eligibility))
}
