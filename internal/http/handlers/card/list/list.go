// Package list реализует HTTP-обработчик списка сохранённых карт.
package list

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

// Service описывает интерфейс списка карт.
type Service interface {
	List(ctx context.Context, userID string) ([]models.Card, error)
}

// Handler обрабатывает HTTP-запросы списка карт.
type Handler struct {
	log   *slog.Logger
	cards Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cards Service) *Handler {
	return &Handler{log: log, cards: cards}
}

// ServeHTTP godoc
// @Summary Список карт
// @Tags Cards
// @Produce  json
// @Success 200 {array} models.Card "Сохранённые карты"
// @Router /cards [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.card.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)

	cards, err := h.cards.List(r.Context(), userID)
	if err != nil {
		log.Error("failed to load cards", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load cards, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"cards": cards,
	}))
}
