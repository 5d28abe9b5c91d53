// Package verify реализует HTTP-обработчик подтверждения обновления
// карты после возврата с платёжного провайдера.
package verify

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
	Reference string `json:"reference" validate:"required"`
}

// Service описывает интерфейс подтверждения обновления карты.
type Service interface {
	VerifyUpdate(ctx context.Context, reference, userID string) error
}

// Handler обрабатывает HTTP-запросы подтверждения обновления карты.
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
// @Summary Подтверждение обновления карты
// @Tags Cards
// @Accept  json
// @Produce  json
// @Param request body Request true "Референс платежа"
// @Success 200 {object} response.Response "Карта подтверждена"
// @Router /cards/verify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.card.verify"

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

	if err := h.cards.VerifyUpdate(r.Context(), req.Reference, userID); err != nil {
		log.Error("card verification failed", sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(apiErr.Message))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to verify card update, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "card update verified",
	}))
}
