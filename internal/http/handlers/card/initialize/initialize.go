// Package initialize реализует HTTP-обработчик начала добавления или
// замены карты через платёжного провайдера.
package initialize

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
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Request — структура входных данных.
type Request struct {
	Action string `json:"action" validate:"omitempty,oneof=add replace"`
}

// Service описывает интерфейс начала обновления карты.
type Service interface {
	InitializeUpdate(ctx context.Context, email, userID, action string) (*models.Checkout, error)
}

// SessionReader отдаёт кешированную сессию по токену.
type SessionReader interface {
	Get(token string) (models.Session, bool)
}

// Handler обрабатывает HTTP-запросы начала обновления карты.
type Handler struct {
	log      *slog.Logger
	cards    Service
	sessions SessionReader
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cards Service, sessions SessionReader) *Handler {
	return &Handler{log: log, cards: cards, sessions: sessions, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Добавление или замена карты
// @Tags Cards
// @Accept  json
// @Produce  json
// @Param request body Request true "Действие"
// @Success 200 {object} models.Checkout "Ссылка на авторизацию карты"
// @Router /cards/initialize [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.card.initialize"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)
	token, _ := r.Context().Value(middlewarectx.AuthToken).(string)

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

	email := ""
	if session, ok := h.sessions.Get(token); ok {
		email = session.Email
	}

	checkout, err := h.cards.InitializeUpdate(r.Context(), email, userID, req.Action)
	if err != nil {
		log.Error("card update initialization failed", sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(apiErr.Message))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to start card update, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(checkout))
}
