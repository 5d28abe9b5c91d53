// Package dashboard реализует HTTP-обработчик главной страницы
// подписчика. Секции грузятся параллельно; отказ одной секции не валит
// ответ целиком — клиент получает остальные и текст ошибки по месту.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Service описывает интерфейс сборки дашборда.
type Service interface {
	DashboardData(ctx context.Context) *models.Dashboard
}

// Handler обрабатывает HTTP-запросы дашборда.
type Handler struct {
	log     *slog.Logger
	catalog Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog}
}

// ServeHTTP godoc
// @Summary Дашборд подписчика
// @Description Возвращает новинки, жанры и журналы одним ответом.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} models.Dashboard "Секции дашборда"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.dashboard"

	h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	).Info("loading dashboard sections")

	data := h.catalog.DashboardData(r.Context())
	render.JSON(w, r, response.OKWithData(data))
}
