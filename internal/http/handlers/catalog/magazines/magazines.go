// Package magazines реализует HTTP-обработчик списка журналов.
package magazines

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Service описывает интерфейс списка журналов.
type Service interface {
	Magazines(ctx context.Context) ([]models.Magazine, error)
}

// Handler обрабатывает HTTP-запросы списка журналов.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Список журналов
// @Tags Catalog
// @Produce  json
// @Success 200 {array} models.Magazine "Журналы каталога"
// @Router /catalog/magazines [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.magazines"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.catalog.Magazines(r.Context())
	if err != nil {
		log.Error("failed to load magazines", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load magazines, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"magazines": list,
	}))
}
