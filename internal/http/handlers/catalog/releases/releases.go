// Package releases реализует HTTP-обработчик списка новинок.
package releases

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

// Service описывает интерфейс списка новинок.
type Service interface {
	NewReleases(ctx context.Context) ([]models.Book, error)
}

// Handler обрабатывает HTTP-запросы новинок.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Новинки каталога
// @Tags Catalog
// @Produce  json
// @Success 200 {array} models.Book "Список новинок"
// @Router /catalog/new-releases [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.releases"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	books, err := h.catalog.NewReleases(r.Context())
	if err != nil {
		log.Error("failed to load new releases", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load new releases, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"books": books,
	}))
}
