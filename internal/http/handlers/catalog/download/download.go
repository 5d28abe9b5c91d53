// Package download реализует HTTP-обработчик скачивания файлов книг и
// журналов. Файл проксируется из бэкенда как есть, вместе с content-type.
package download

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
)

// Request — структура входных данных.
type Request struct {
	URL  string `json:"url" validate:"required,url"`
	Kind string `json:"kind" validate:"omitempty,oneof=book magazine"`
}

// Service описывает интерфейс скачивания файлов.
type Service interface {
	Download(ctx context.Context, token, bookURL string) ([]byte, string, error)
	DownloadMagazine(ctx context.Context, token, magazineURL string) ([]byte, string, error)
}

// Handler обрабатывает HTTP-запросы скачивания.
type Handler struct {
	log      *slog.Logger
	catalog  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, catalog Service) *Handler {
	return &Handler{log: log, catalog: catalog, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Скачивание книги или журнала
// @Tags Catalog
// @Accept  json
// @Produce  octet-stream
// @Param request body Request true "Адрес файла"
// @Success 200 {file} binary "Файл"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /downloads [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.download"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	var (
		data        []byte
		contentType string
		err         error
	)
	if req.Kind == "magazine" {
		data, contentType, err = h.catalog.DownloadMagazine(r.Context(), token, req.URL)
	} else {
		data, contentType, err = h.catalog.Download(r.Context(), token, req.URL)
	}
	if err != nil {
		log.Error("download failed", sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok {
			w.WriteHeader(apiErr.StatusCode)
			render.JSON(w, r, response.Error(apiErr.Message))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to download file, try again"))
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		log.Warn("failed to write file body", sl.Err(err))
	}
}
