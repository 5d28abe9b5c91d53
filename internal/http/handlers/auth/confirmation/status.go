package confirmation

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
)

// StatusHandler обрабатывает HTTP-запросы проверки статуса подтверждения.
type StatusHandler struct {
	log  *slog.Logger
	auth Service
}

// NewStatus создает новый экземпляр StatusHandler.
func NewStatus(log *slog.Logger, auth Service) *StatusHandler {
	return &StatusHandler{log: log, auth: auth}
}

// ServeHTTP godoc
// @Summary Статус подтверждения почты
// @Tags Auth
// @Produce  json
// @Param email query string true "Почта учётной записи"
// @Success 200 {object} map[string]any "Признак подтверждения"
// @Router /auth/confirmation/status [get]
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.confirmation.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("email is required"))
		return
	}

	confirmed, err := h.auth.CheckEmailConfirmation(r.Context(), email)
	if err != nil {
		log.Error("failed to check email confirmation", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to check confirmation status, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"confirmed": confirmed,
	}))
}
