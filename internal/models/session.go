// Package models содержит доменные структуры клиентского ядра BookHub:
// сессию пользователя, снимок статуса подписки, отложенное действие
// и типы каталога. Все данные принадлежат внешнему бэкенду, клиент
// хранит только кешированные копии.
package models

import "time"

// Session представляет аутентифицированную сессию браузера.
// Создаётся при успешном login/signup, уничтожается при logout
// или при истечении срока на стороне сервера (обнаруживается лениво).
type Session struct {
	UserID      string `json:"user_id"`      // Уникальный идентификатор пользователя
	Email       string `json:"email"`        // Электронная почта
	AccessToken string `json:"access_token"` // JWT, выданный бэкендом
	ExpiresAt   int64  `json:"expires_at"`   // Unix-время истечения токена
}

// Expired сообщает, истёк ли токен сессии по локальным данным.
// Нулевое значение ExpiresAt трактуется как "неизвестно" — не истёк.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return now.Unix() >= s.ExpiresAt
}
