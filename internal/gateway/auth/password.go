package auth

import (
	"context"
	"net/http"
)

// ForgotPassword запрашивает письмо для восстановления пароля.
func (g *Gateway) ForgotPassword(ctx context.Context, email string) error {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/forgot-password/", "", map[string]string{
		"email": email,
	})
	if err != nil {
		return err
	}
	return g.api.DoJSON(req, nil)
}

// ResetPassword устанавливает новый пароль по токену из письма.
func (g *Gateway) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/reset-password/", "", map[string]string{
		"access_token": resetToken,
		"new_password": newPassword,
	})
	if err != nil {
		return err
	}
	return g.api.DoJSON(req, nil)
}

// ChangePassword меняет пароль аутентифицированного пользователя.
func (g *Gateway) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/change-password/", token, map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	})
	if err != nil {
		return err
	}
	return g.api.DoJSON(req, nil)
}

// ResendConfirmationEmail повторно отправляет письмо подтверждения почты.
func (g *Gateway) ResendConfirmationEmail(ctx context.Context, email string) error {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/resend-confirmation-email/", "", map[string]string{
		"email": email,
	})
	if err != nil {
		return err
	}
	return g.api.DoJSON(req, nil)
}

// CheckEmailConfirmation сообщает, подтверждена ли почта пользователя.
func (g *Gateway) CheckEmailConfirmation(ctx context.Context, email string) (bool, error) {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/check-email-confirmation/", "", map[string]string{
		"email": email,
	})
	if err != nil {
		return false, err
	}
	var resp struct {
		Confirmed bool `json:"confirmed"`
	}
	if err := g.api.DoJSON(req, &resp); err != nil {
		return false, err
	}
	return resp.Confirmed, nil
}
