// Package bookdetail реализует HTTP-обработчик карточки книги.
package bookdetail

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Service описывает интерфейс карточки книги.
type Service interface {
	BookDetail(ctx context.Context, slug string) (*models.Book, error)
}

// Handler обрабатывает HTTP-запросы карточки книги.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Карточка книги
// @Tags Catalog
// @Produce  json
// @Param slug path string true "Слаг книги"
// @Success 200 {object} models.Book "Данные книги"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Router /catalog/books/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.bookdetail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("book slug is required"))
		return
	}

	book, err := h.catalog.BookDetail(r.Context(), slug)
	if err != nil {
		log.Error("failed to load book detail", slog.String("slug", slug), sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load book, try again"))
		return
	}

	render.JSON(w, r, response.OKWithData(book))
}
