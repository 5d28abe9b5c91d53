// Package sessioncache — явный in-memory кеш данных сессии с определённым
// жизненным циклом вместо скрытых глобальных переменных уровня модуля.
// Кеш хранит соответствие "токен → сессия", заполняется после удачного
// login или checkAuth и стирается при logout. Персистентным источником
// остаётся clientstate: память — только ускоряющее зеркало.
package sessioncache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Cache — in-memory кеш сессий с TTL.
type Cache struct {
	c *gocache.Cache
}

// New создает кеш. Записи живут ttl и вычищаются фоновым сборщиком.
func New(ttl time.Duration) *Cache {
	return &Cache{c: gocache.New(ttl, 2*ttl)}
}

// Put запоминает сессию по её токену.
func (c *Cache) Put(token string, s models.Session) {
	if token == "" {
		return
	}
	c.c.SetDefault(token, s)
}

// Get возвращает сессию по токену без сетевого вызова.
// Отсутствие записи не означает, что сессия мертва — только что память
// о ней не ведётся; достоверность даёт лишь checkAuth. Сессия с истёкшим
// по локальным данным токеном выбрасывается, не дожидаясь TTL кеша.
func (c *Cache) Get(token string) (models.Session, bool) {
	v, ok := c.c.Get(token)
	if !ok {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	if !ok {
		return models.Session{}, false
	}
	if s.Expired(time.Now()) {
		c.c.Delete(token)
		return models.Session{}, false
	}
	return s, true
}

// Clear стирает память о сессии. Вызывается при logout вместе с очисткой
// персистентного состояния.
func (c *Cache) Clear(token string) {
	c.c.Delete(token)
}
