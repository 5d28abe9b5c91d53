// Package search реализует HTTP-обработчик поиска по каталогу.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Service описывает интерфейс поиска.
type Service interface {
	Search(ctx context.Context, query string) ([]models.Book, error)
}

// Handler обрабатывает HTTP-запросы поиска.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Поиск книг
// @Tags Catalog
// @Produce  json
// @Param s query string true "Строка поиска"
// @Success 200 {array} models.Book "Найденные книги"
// @Router /catalog/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := strings.TrimSpace(r.URL.Query().Get("s"))
	if query == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("search query is required"))
		return
	}

	books, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		log.Error("catalog search failed", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("search is unavailable, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"results": books,
	}))
}
