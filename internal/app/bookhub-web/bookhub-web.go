package bookhubweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/bookhub-web/internal/cache"
	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/config"
	"github.com/magabrotheeeer/bookhub-web/internal/continuation"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/auth"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/card"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/catalog"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/subscription"
	"github.com/magabrotheeeer/bookhub-web/internal/guard"
	"github.com/magabrotheeeer/bookhub-web/internal/sessioncache"
)

// Время жизни кешированной проверки сессии. Короткое намеренно:
// отзыв токена на бэкенде должен замечаться быстро.
const sessionCacheTTL = 5 * time.Minute

type App struct {
	server *http.Server
	logger *slog.Logger
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	api := backendapi.NewClient(cfg.BaseURL, cfg.Timeout)
	sessions := sessioncache.New(sessionCacheTTL)
	states := clientstate.New([]byte(cfg.HashKey), cfg.CookieName, cfg.MaxAge, cfg.Secure)

	authGateway := auth.New(api, sessions, logger)
	subsGateway := subscription.New(api, logger)
	catalogGateway := catalog.New(api, cacheRedis, cfg.CatalogTTL, logger)
	cardGateway := card.New(api, logger)

	accessGuard := guard.New(authGateway, subsGateway, logger)
	flow := continuation.New(authGateway, subsGateway, sessions, logger)
	poller := continuation.NewPoller(subsGateway, cfg.PollInterval, cfg.PollBudget, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, states, accessGuard, flow, poller,
		authGateway, subsGateway, catalogGateway, cardGateway, sessions)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
