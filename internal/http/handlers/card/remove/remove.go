// Package remove реализует HTTP-обработчик удаления сохранённой карты.
package remove

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
)

// Request — структура входных данных.
type Request struct {
	CardID int64 `json:"card_id" validate:"required"`
}

// Service описывает интерфейс удаления карты.
type Service interface {
	Remove(ctx context.Context, userID string, cardID int64) error
}

// Handler обрабатывает HTTP-запросы удаления карты.
type Handler struct {
	log      *slog.Logger
	cards    Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cards Service) *Handler {
	return &Handler{log: log, cards: cards, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Удаление карты
// @Tags Cards
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор карты"
// @Success 200 {object} response.Response "Карта удалена"
// @Router /cards/remove [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.card.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.cards.Remove(r.Context(), userID, req.CardID); err != nil {
		log.Error("failed to remove card", sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(apiErr.Message))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to remove card, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "card removed",
	}))
}
