package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// DashboardData собирает независимые секции дашборда параллельно.
// Ошибка одной секции записывается в её поле Err и не прерывает
// остальные: частичный отказ не должен блокировать рендер.
func (g *Gateway) DashboardData(ctx context.Context) *models.Dashboard {
	var dashboard models.Dashboard

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		books, err := g.NewReleases(egCtx)
		if err != nil {
			dashboard.NewReleases.Err = "failed to load new releases, try again"
			return nil
		}
		dashboard.NewReleases.Items = books
		return nil
	})
	eg.Go(func() error {
		genres, err := g.Genres(egCtx)
		if err != nil {
			dashboard.Genres.Err = "failed to load genres, try again"
			return nil
		}
		dashboard.Genres.Items = genres
		return nil
	})
	eg.Go(func() error {
		magazines, err := g.Magazines(egCtx)
		if err != nil {
			dashboard.Magazines.Err = "failed to load magazines, try again"
			return nil
		}
		dashboard.Magazines.Items = magazines
		return nil
	})

	_ = eg.Wait()
	return &dashboard
}
