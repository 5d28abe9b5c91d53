// Package confirmation реализует HTTP-обработчики подтверждения почты:
// повторную отправку письма и проверку статуса подтверждения.
package confirmation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
)

// Request — структура входных данных.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс операций подтверждения почты.
type Service interface {
	ResendConfirmationEmail(ctx context.Context, email string) error
	CheckEmailConfirmation(ctx context.Context, email string) (bool, error)
}

// Handler обрабатывает HTTP-запросы повторной отправки письма.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{log: log, auth: auth, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Повторная отправка письма подтверждения
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта учётной записи"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Router /auth/confirmation/resend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirmation.resend"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	if err := h.auth.ResendConfirmationEmail(r.Context(), req.Email); err != nil {
		log.Error("failed to resend confirmation email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to resend confirmation email, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "confirmation email sent",
	}))
}
