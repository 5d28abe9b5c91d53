// Package clientstate реализует персистентное клиентское состояние браузера:
// небольшой набор флагов (идентификатор пользователя, токен, отложенное
// действие подписки) в подписанной cookie-сессии. Состояние переживает
// перезагрузку страницы, очищается явно при logout или по завершении
// потока, который оно обслуживает. Между вкладками действует
// last-write-wins, финальная защита от двойного списания — серверная
// идемпотентность старта подписки.
package clientstate

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Ключи значений внутри cookie-сессии. Пространство имён фиксировано
// именем cookie, сами ключи совпадают с ключами исходного клиента.
const (
	keyUserID       = "user_id"
	keyAuthToken    = "auth_token"
	keyIntendedPlan = "intended_subscription_plan"
	keyAttemptToken = "subscription_attempt"
)

// Store создаёт и читает клиентские сессии.
type Store struct {
	store *sessions.CookieStore
	name  string
}

// New создает новый Store поверх подписанного cookie-хранилища.
func New(hashKey []byte, cookieName string, maxAge int, secure bool) *Store {
	cs := sessions.NewCookieStore(hashKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs, name: cookieName}
}

// Load возвращает состояние клиента из запроса. Повреждённая или
// отсутствующая cookie даёт пустое состояние, а не ошибку.
func (s *Store) Load(r *http.Request) *State {
	sess, _ := s.store.Get(r, s.name)
	return &State{sess: sess}
}

// State — загруженный снимок клиентских флагов одного браузера.
// Мутации применяются в памяти и попадают в cookie только после Save.
type State struct {
	sess *sessions.Session
}

func (st *State) getString(key string) string {
	if v, ok := st.sess.Values[key].(string); ok {
		return v
	}
	return ""
}

// UserID возвращает кешированный идентификатор пользователя без сетевого
// вызова. Значение может быть устаревшим: вызывающим, которым нужна
// достоверность, следует сначала выполнить CheckAuth.
func (st *State) UserID() string {
	return st.getString(keyUserID)
}

// SetUserID кеширует идентификатор пользователя.
func (st *State) SetUserID(id string) {
	st.sess.Values[keyUserID] = id
}

// AuthToken возвращает сохранённый токен аутентификации (может быть пуст).
func (st *State) AuthToken() string {
	return st.getString(keyAuthToken)
}

// SetAuthToken сохраняет токен аутентификации.
func (st *State) SetAuthToken(token string) {
	st.sess.Values[keyAuthToken] = token
}

// IntendedAction возвращает отложенное действие подписки.
// Неизвестное сохранённое значение трактуется как отсутствие действия.
func (st *State) IntendedAction() models.PlanType {
	plan := models.PlanType(st.getString(keyIntendedPlan))
	if !plan.Valid() {
		return ""
	}
	return plan
}

// SetIntendedAction записывает отложенное действие вместе со свежим
// одноразовым маркером попытки. Одновременно существует не более одного
// действия: повторная запись замещает предыдущую вместе с маркером.
func (st *State) SetIntendedAction(plan models.PlanType) {
	st.sess.Values[keyIntendedPlan] = string(plan)
	st.sess.Values[keyAttemptToken] = uuid.NewString()
}

// AttemptToken возвращает маркер неизрасходованной попытки возобновления.
// Пустая строка означает, что попытка по текущему действию уже была.
func (st *State) AttemptToken() string {
	return st.getString(keyAttemptToken)
}

// ConsumeAttempt расходует маркер попытки. Возвращает false, если маркер
// уже израсходован — возобновление по этому действию повторять нельзя.
func (st *State) ConsumeAttempt() bool {
	if st.getString(keyAttemptToken) == "" {
		return false
	}
	delete(st.sess.Values, keyAttemptToken)
	return true
}

// ClearIntendedAction удаляет отложенное действие и маркер попытки.
// Повторная очистка не является ошибкой.
func (st *State) ClearIntendedAction() {
	delete(st.sess.Values, keyIntendedPlan)
	delete(st.sess.Values, keyAttemptToken)
}

// ClearSession безусловно стирает все клиентские флаги. Вызывается при
// logout независимо от результата сетевого вызова: состояние не должно
// "прилипать" к мёртвой сессии.
func (st *State) ClearSession() {
	delete(st.sess.Values, keyUserID)
	delete(st.sess.Values, keyAuthToken)
	st.ClearIntendedAction()
}

// Save синхронно записывает состояние в cookie ответа. Должен быть вызван
// до того, как обработчик начнёт писать тело ответа, и до любого
// редиректа, уводящего управление из приложения.
func (st *State) Save(r *http.Request, w http.ResponseWriter) error {
	return st.sess.Save(r, w)
}
