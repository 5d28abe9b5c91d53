// Package genres реализует HTTP-обработчик списка жанров.
package genres

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

// Service описывает интерфейс списка жанров.
type Service interface {
	Genres(ctx context.Context) ([]models.Genre, error)
}

// Handler обрабатывает HTTP-запросы списка жанров.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Список жанров
// @Tags Catalog
// @Produce  json
// @Success 200 {array} models.Genre "Жанры каталога"
// @Router /catalog/genres [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.genres"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.catalog.Genres(r.Context())
	if err != nil {
		log.Error("failed to load genres", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load genres, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"genres": list,
	}))
}
