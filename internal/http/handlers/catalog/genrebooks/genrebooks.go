// Package genrebooks реализует HTTP-обработчик постраничного списка
// книг жанра.
package genrebooks

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Service описывает интерфейс выборки книг жанра.
type Service interface {
	GenreBooks(ctx context.Context, slug string, page int) (*models.GenreBooks, error)
}

// Handler обрабатывает HTTP-запросы книг жанра.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Книги жанра
// @Tags Catalog
// @Produce  json
// @Param slug path string true "Слаг жанра"
// @Param page query int false "Номер страницы"
// @Success 200 {object} models.GenreBooks "Страница книг"
// @Router /catalog/genres/{slug}/books [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.genrebooks"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("genre slug is required"))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	books, err := h.catalog.GenreBooks(r.Context(), slug, page)
	if err != nil {
		log.Error("failed to load genre books", slog.String("slug", slug), sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load genre books, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(books))
}
