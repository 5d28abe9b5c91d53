package catalog

import (
	"context"
	"fmt"
	"net/http"
)

// Download получает файл книги через бэкенд. Доступ гейтируется токеном:
// бэкенд отвечает 401 для неаутентифицированных запросов.
func (g *Gateway) Download(ctx context.Context, token, bookURL string) ([]byte, string, error) {
	const op = "gateway.catalog.Download"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/download/", token, map[string]string{
		"url": bookURL,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	data, contentType, err := g.api.DoRaw(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return data, contentType, nil
}

// DownloadMagazine получает файл журнала через бэкенд.
func (g *Gateway) DownloadMagazine(ctx context.Context, token, magazineURL string) ([]byte, string, error) {
	const op = "gateway.catalog.DownloadMagazine"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/download-magazine/", token, map[string]string{
		"url": magazineURL,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	data, contentType, err := g.api.DoRaw(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return data, contentType, nil
}
