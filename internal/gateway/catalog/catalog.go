// Package catalog реализует шлюз к read-only каталогу бэкенда: поиск,
// новинки, жанры, журналы и скачивание файлов. Списки каталога меняются
// редко, поэтому ответы кешируются в redis с TTL; поиск не кешируется.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Cache описывает методы кеширования ответов каталога.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Gateway — клиент каталога бэкенда.
type Gateway struct {
	api   *backendapi.Client
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создает новый Gateway. cache может быть nil — тогда кеширование
// выключено и каждый вызов идёт в сеть.
func New(api *backendapi.Client, cache Cache, ttl time.Duration, log *slog.Logger) *Gateway {
	return &Gateway{api: api, cache: cache, ttl: ttl, log: log}
}

func (g *Gateway) getJSON(ctx context.Context, path string, out any) error {
	req, err := g.api.NewRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return g.api.DoJSON(req, out)
}

// cached выполняет fetch с прозрачным кешированием результата.
// Ошибки кеша не фатальны: каталог обязан работать и без redis.
func (g *Gateway) cached(ctx context.Context, key string, out any, fetch func() error) error {
	if g.cache != nil {
		found, err := g.cache.Get(ctx, key, out)
		switch {
		case err != nil:
			// Нечитаемая запись выбрасывается, чтобы не спотыкаться о неё
			// на каждом запросе до истечения TTL.
			g.log.Warn("catalog cache read failed", slog.String("key", key), sl.Err(err))
			if err := g.cache.Invalidate(ctx, key); err != nil {
				g.log.Warn("catalog cache invalidate failed", slog.String("key", key), sl.Err(err))
			}
		case found:
			return nil
		}
	}
	if err := fetch(); err != nil {
		return err
	}
	if g.cache != nil {
		if err := g.cache.Set(ctx, key, out, g.ttl); err != nil {
			g.log.Warn("catalog cache write failed", slog.String("key", key), sl.Err(err))
		}
	}
	return nil
}

// Search ищет книги по строке запроса.
func (g *Gateway) Search(ctx context.Context, query string) ([]models.Book, error) {
	const op = "gateway.catalog.Search"

	var resp struct {
		Results []models.Book `json:"results"`
	}
	path := "/api/search/?s=" + url.QueryEscape(query)
	if err := g.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Results, nil
}

// NewReleases возвращает список новинок.
func (g *Gateway) NewReleases(ctx context.Context) ([]models.Book, error) {
	const op = "gateway.catalog.NewReleases"

	var resp struct {
		Books []models.Book `json:"books"`
	}
	err := g.cached(ctx, "catalog:new-releases", &resp, func() error {
		return g.getJSON(ctx, "/api/new-releases/", &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Books, nil
}

// Genres возвращает список жанров.
func (g *Gateway) Genres(ctx context.Context) ([]models.Genre, error) {
	const op = "gateway.catalog.Genres"

	var resp struct {
		Genres []models.Genre `json:"genres"`
	}
	err := g.cached(ctx, "catalog:genres", &resp, func() error {
		return g.getJSON(ctx, "/api/genres/", &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Genres, nil
}

// GenreBooks возвращает страницу книг жанра.
func (g *Gateway) GenreBooks(ctx context.Context, slug string, page int) (*models.GenreBooks, error) {
	const op = "gateway.catalog.GenreBooks"

	if page < 1 {
		page = 1
	}
	var resp models.GenreBooks
	path := fmt.Sprintf("/api/genres/%s/books/?page=%d", url.PathEscape(slug), page)
	err := g.cached(ctx, fmt.Sprintf("catalog:genre:%s:%d", slug, page), &resp, func() error {
		return g.getJSON(ctx, path, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &resp, nil
}

// Magazines возвращает список журналов.
func (g *Gateway) Magazines(ctx context.Context) ([]models.Magazine, error) {
	const op = "gateway.catalog.Magazines"

	var resp struct {
		Magazines []models.Magazine `json:"magazines"`
	}
	err := g.cached(ctx, "catalog:magazines", &resp, func() error {
		return g.getJSON(ctx, "/api/magazines/", &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Magazines, nil
}

// BookDetail возвращает карточку книги по slug.
func (g *Gateway) BookDetail(ctx context.Context, slug string) (*models.Book, error) {
	const op = "gateway.catalog.BookDetail"

	var book models.Book
	path := "/api/book-detail/" + url.PathEscape(slug) + "/"
	err := g.cached(ctx, "catalog:book:"+slug, &book, func() error {
		return g.getJSON(ctx, path, &book)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &book, nil
}
