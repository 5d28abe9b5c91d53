// Package auth реализует шлюз к сессионным конечным точкам бэкенда:
// who-am-i, login, signup, logout и операциям восстановления пароля.
//
// Контракт CheckAuth намеренно мягкий: любая неудача (сеть, 401, 403)
// означает "не аутентифицирован" и не возвращается как ошибка. Остальные
// операции отдают типизированные ошибки с дословным текстом бэкенда.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
	"github.com/magabrotheeeer/bookhub-web/internal/sessioncache"
)

// Gateway — клиент сессионных операций бэкенда.
type Gateway struct {
	api      *backendapi.Client
	sessions *sessioncache.Cache
	log      *slog.Logger
}

// New создает новый Gateway.
func New(api *backendapi.Client, sessions *sessioncache.Cache, log *slog.Logger) *Gateway {
	return &Gateway{api: api, sessions: sessions, log: log}
}

type userPayload struct {
	ID    string `json:"id"`
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

func (u userPayload) userID() string {
	if u.ID != "" {
		return u.ID
	}
	return u.Sub
}

type sessionPayload struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type authResponse struct {
	User    userPayload    `json:"user"`
	Session sessionPayload `json:"session"`
}

// CheckAuth опрашивает /api/me/ и возвращает идентификатор пользователя
// и признак живой сессии. Побочный эффект — обновление кеша сессий.
func (g *Gateway) CheckAuth(ctx context.Context, token string) (string, bool) {
	const op = "gateway.auth.CheckAuth"

	// Локально истёкший токен не ходит в сеть: ответ известен заранее.
	if g.TokenExpired(token) {
		g.sessions.Clear(token)
		g.log.Info("auth check skipped: token is locally expired", sl.Op(op))
		return "", false
	}

	req, err := g.api.NewRequest(ctx, http.MethodGet, "/api/me/", token, nil)
	if err != nil {
		g.log.Error("failed to build auth check request", sl.Op(op), sl.Err(err))
		return "", false
	}
	var resp authResponse
	if err := g.api.DoJSON(req, &resp); err != nil {
		g.log.Info("auth check failed", sl.Op(op), sl.Err(err))
		return "", false
	}
	id := resp.User.userID()
	if id == "" {
		return "", false
	}
	g.sessions.Put(token, models.Session{
		UserID:      id,
		Email:       resp.User.Email,
		AccessToken: token,
	})
	return id, true
}

// Login выполняет вход по паре email/пароль. Сообщение об ошибке бэкенда
// доносится до вызывающего дословно.
func (g *Gateway) Login(ctx context.Context, email, password string) (*models.Session, error) {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/login/", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := g.api.DoJSON(req, &resp); err != nil {
		return nil, err
	}
	session := &models.Session{
		UserID:      resp.User.userID(),
		Email:       resp.User.Email,
		AccessToken: resp.Session.AccessToken,
		ExpiresAt:   resp.Session.ExpiresAt,
	}
	g.sessions.Put(session.AccessToken, *session)
	return session, nil
}

// Signup создает учётную запись. Сессия в ответе может отсутствовать,
// если бэкенд требует подтверждения почты.
func (g *Gateway) Signup(ctx context.Context, email, password, firstName, lastName string) (*models.Session, error) {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/signup/", "", map[string]string{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	})
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := g.api.DoJSON(req, &resp); err != nil {
		return nil, err
	}
	session := &models.Session{
		UserID:      resp.User.userID(),
		Email:       resp.User.Email,
		AccessToken: resp.Session.AccessToken,
		ExpiresAt:   resp.Session.ExpiresAt,
	}
	if session.AccessToken != "" {
		g.sessions.Put(session.AccessToken, *session)
	}
	return session, nil
}

// Logout завершает серверную сессию. Кеш сессий чистится до сетевого
// вызова: клиентское состояние не должно пережить мёртвую сессию даже
// при сбое сети.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	g.sessions.Clear(token)

	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/logout/", token, nil)
	if err != nil {
		return err
	}
	return g.api.DoJSON(req, nil)
}

// RefreshToken запрашивает обновление токена сессии.
func (g *Gateway) RefreshToken(ctx context.Context, token string) (*models.Session, error) {
	req, err := g.api.NewRequest(ctx, http.MethodPost, "/api/refresh-token/", token, nil)
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := g.api.DoJSON(req, &resp); err != nil {
		return nil, err
	}
	session := &models.Session{
		UserID:      resp.User.userID(),
		AccessToken: resp.Session.AccessToken,
		ExpiresAt:   resp.Session.ExpiresAt,
	}
	g.sessions.Clear(token)
	g.sessions.Put(session.AccessToken, *session)
	return session, nil
}

// TokenExpired локально проверяет exp-клейм токена без валидации подписи:
// подпись проверяет бэкенд, здесь только ленивое обнаружение устаревания.
// Токен без exp или неразбираемый токен не считается истёкшим.
func (g *Gateway) TokenExpired(token string) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
