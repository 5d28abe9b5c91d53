// Package guard реализует решение о допуске к защищённым видам:
// композицию проверки аутентификации и статуса подписки.
//
// Решение пересчитывается на каждый запрос защищённого маршрута —
// кеширования между навигациями нет, поскольку статус подписки может
// измениться вне приложения (через webhook у бэкенда). Все проверки
// fail-closed: ошибка трактуется как отсутствие доступа, защищённый
// контент при неудавшейся или незавершённой проверке не отдаётся.
package guard

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// AuthService описывает проверку аутентификации.
type AuthService interface {
	CheckAuth(ctx context.Context, token string) (string, bool)
}

// SubscriptionService описывает проверку статуса подписки.
type SubscriptionService interface {
	CheckStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error)
}

// Decision — исход проверки допуска.
type Decision int

const (
	// DecisionAllow — допустить к защищённому контенту.
	DecisionAllow Decision = iota
	// DecisionRedirectLogin — сессии нет, отправить на вход.
	DecisionRedirectLogin
	// DecisionRedirectUpgrade — сессия есть, подписки нет: на оформление.
	DecisionRedirectUpgrade
)

// Guard объединяет шлюзы аутентификации и подписки в решение о допуске.
type Guard struct {
	auth AuthService
	subs SubscriptionService
	log  *slog.Logger
}

// New создает новый Guard.
func New(auth AuthService, subs SubscriptionService, log *slog.Logger) *Guard {
	return &Guard{auth: auth, subs: subs, log: log}
}

// Check возвращает решение о допуске и идентификатор пользователя
// (пустой, если аутентификация не подтверждена).
func (g *Guard) Check(ctx context.Context, token string, requireSubscription bool) (Decision, string) {
	const op = "guard.Check"

	userID, ok := g.auth.CheckAuth(ctx, token)
	if !ok {
		return DecisionRedirectLogin, ""
	}
	if !requireSubscription {
		return DecisionAllow, userID
	}

	status, err := g.subs.CheckStatus(ctx, userID)
	if err != nil {
		g.log.Warn("subscription check failed, denying access", sl.Op(op), sl.Err(err))
		return DecisionRedirectUpgrade, userID
	}
	if !status.HasAccess {
		return DecisionRedirectUpgrade, userID
	}
	return DecisionAllow, userID
}
