// Package card реализует шлюз к конечным точкам способов оплаты.
// Клиент только читает список карт и отправляет запросы на изменение;
// состояние карт авторитетно хранит бэкенд.
package card

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Gateway — клиент операций со способами оплаты.
type Gateway struct {
	api *backendapi.Client
	log *slog.Logger
}

// New создает новый Gateway.
func New(api *backendapi.Client, log *slog.Logger) *Gateway {
	return &Gateway{api: api, log: log}
}

// List возвращает сохранённые карты пользователя.
func (g *Gateway) List(ctx context.Context, userID string) ([]models.Card, error) {
	const op = "gateway.card.List"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/cards/", "", map[string]string{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var resp struct {
		Cards []models.Card `json:"cards"`
	}
	if err := g.api.DoJSON(req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Cards, nil
}

// InitializeUpdate начинает добавление или замену карты и возвращает
// адрес авторизации платёжного провайдера.
func (g *Gateway) InitializeUpdate(ctx context.Context, email, userID, action string) (*models.Checkout, error) {
	const op = "gateway.card.InitializeUpdate"

	if action == "" {
		action = "add"
	}
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/cards/initialize-update/", "", map[string]string{
		"email":   email,
		"user_id": userID,
		"action":  action,
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

// SetDefault делает карту основной.
func (g *Gateway) SetDefault(ctx context.Context, userID string, cardID int64) error {
	const op = "gateway.card.SetDefault"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/cards/set-default/", "", map[string]any{
		"user_id": userID,
		"card_id": cardID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := g.api.DoJSON(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove удаляет сохранённую карту.
func (g *Gateway) Remove(ctx context.Context, userID string, cardID int64) error {
	const op = "gateway.card.Remove"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/cards/remove/", "", map[string]any{
		"user_id": userID,
		"card_id": cardID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := g.api.DoJSON(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// VerifyUpdate подтверждает обновление карты после возврата с оплаты.
func (g *Gateway) VerifyUpdate(ctx context.Context, reference, userID string) error {
	const op = "gateway.card.VerifyUpdate"

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/cards/verify-update/", "", map[string]string{
		"reference": reference,
		"user_id":   userID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := g.api.DoJSON(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
