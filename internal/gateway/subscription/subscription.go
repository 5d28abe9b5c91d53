// Package subscription реализует шлюз к биллинговым конечным точкам
// бэкенда: проверка статуса, право на пробный период, старт триала и
// платной подписки.
//
// Все методы работают в режиме fail-closed: при любой ошибке вызывающий
// обязан считать пользователя неподписанным и неправомочным, а не
// предполагать успех. Шлюз не делает внутренних повторов — политика
// ретраев принадлежит вызывающему.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Gateway — клиент биллинговых операций бэкенда.
type Gateway struct {
	api *backendapi.Client
	log *slog.Logger
}

// New создает новый Gateway.
func New(api *backendapi.Client, log *slog.Logger) *Gateway {
	return &Gateway{api: api, log: log}
}

// CheckStatus возвращает снимок статуса подписки пользователя.
func (g *Gateway) CheckStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error) {
	const op = "gateway.subscription.CheckStatus"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/check-subscription/", "", map[string]string{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var status models.SubscriptionStatus
	if err := g.api.DoJSON(req, &status); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &status, nil
}

// CheckTrialEligibility спрашивает бэкенд, может ли пользователь начать
// пробный период. Правило целиком серверное.
func (g *Gateway) CheckTrialEligibility(ctx context.Context, userID string) (*models.TrialEligibility, error) {
	const op = "gateway.subscription.CheckTrialEligibility"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/check-trial-eligibility/", "", map[string]string{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var eligibility models.TrialEligibility
	if err := g.api.DoJSON(req, &eligibility); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &eligibility, nil
}

// StartTrial инициирует пробный период и возвращает адрес авторизации
// платёжного провайдера. Право на триал должно быть проверено
// непосредственно перед вызовом, в рамках того же действия пользователя;
// финальную идемпотентность обеспечивает сервер.
func (g *Gateway) StartTrial(ctx context.Context, userID, email string) (*models.Checkout, error) {
	const op = "gateway.subscription.StartTrial"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/sub-starttrial/", "", map[string]string{
		"user_id": userID,
		"email":   email,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var checkout models.Checkout
	if err := g.api.DoJSON(req, &checkout); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &checkout, nil
}

// StartPaidSubscription инициирует платную подписку выбранного тарифа.
func (g *Gateway) StartPaidSubscription(ctx context.Context, email, userID string, planType models.PlanType) (*models.Checkout, error) {
	const op = "gateway.subscription.StartPaidSubscription"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/start-subscription/", "", map[string]string{
		"email":     email,
		"user_id":   userID,
		"plan_type": string(planType),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var checkout models.Checkout
	if err := g.api.DoJSON(req, &checkout); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &checkout, nil
}

// CancelSubscription запрашивает отмену подписки.
func (g *Gateway) CancelSubscription(ctx context.Context, userID string) error {
	const op = "gateway.subscription.CancelSubscription"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/cancel-subscription", "", map[string]string{
		"user_id": userID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := g.api.DoJSON(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
