// Package continuation реализует возобновление намерения пользователя
// после ухода из-под контроля приложения (на страницу входа или к
// платёжному провайдеру) и возврата обратно.
//
// Протокол: намерение записывается в персистентное клиентское состояние
// синхронно, до редиректа; на странице возврата оно читается и
// возобновляется не более одного раза на записанное значение — повторный
// вызов (аналог повторного mount в браузере) не приводит ко второму
// списанию. Маркер попытки расходуется до сетевого вызова, само намерение
// стирается сразу после того, как вызов старта вернулся, независимо от
// исхода: потерю намерения при транзиентном сбое мы принимаем, защита от
// двойного списания важнее автоповтора, финальная страховка — серверная
// идемпотентность.
package continuation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// AuthService описывает повторную проверку аутентификации.
type AuthService interface {
	CheckAuth(ctx context.Context, token string) (string, bool)
}

// SubscriptionService описывает биллинговые операции возобновления.
type SubscriptionService interface {
	CheckStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error)
	CheckTrialEligibility(ctx context.Context, userID string) (*models.TrialEligibility, error)
	StartTrial(ctx context.Context, userID, email string) (*models.Checkout, error)
	StartPaidSubscription(ctx context.Context, email, userID string, planType models.PlanType) (*models.Checkout, error)
}

// SessionReader отдаёт кешированную сессию по токену (для email).
type SessionReader interface {
	Get(token string) (models.Session, bool)
}

// OutcomeKind — вид исхода шага потока подписки.
type OutcomeKind int

const (
	// OutcomeNone — отложенного действия нет, обычный визит.
	OutcomeNone OutcomeKind = iota
	// OutcomeLoginRequired — намерение записано, пользователя ведут на вход.
	OutcomeLoginRequired
	// OutcomeAbandoned — возврат без завершённого входа, поток брошен.
	OutcomeAbandoned
	// OutcomeAlreadySubscribed — доступ уже есть, списание не нужно.
	OutcomeAlreadySubscribed
	// OutcomeNotEligible — бизнес-отказ: пробный период недоступен.
	OutcomeNotEligible
	// OutcomeCheckout — старт оформлен, нужен переход к провайдеру.
	OutcomeCheckout
)

// Outcome — результат шага потока подписки.
type Outcome struct {
	Kind        OutcomeKind
	RedirectURL string
	Reference   string
	Message     string
}

// Controller управляет записью и возобновлением намерения.
type Controller struct {
	auth     AuthService
	subs     SubscriptionService
	sessions SessionReader
	log      *slog.Logger
}

// New создает новый Controller.
func New(auth AuthService, subs SubscriptionService, sessions SessionReader, log *slog.Logger) *Controller {
	return &Controller{auth: auth, subs: subs, sessions: sessions, log: log}
}

// Start обрабатывает клик по тарифу. Неаутентифицированному пользователю
// намерение записывается в состояние (вызывающий обязан сохранить cookie
// до ответа) и возвращается редирект на вход; аутентифицированному —
// действие диспетчеризуется сразу.
func (c *Controller) Start(ctx context.Context, st *clientstate.State, plan models.PlanType) (*Outcome, error) {
	const op = "continuation.Start"

	userID, ok := c.auth.CheckAuth(ctx, st.AuthToken())
	if !ok {
		st.SetIntendedAction(plan)
		c.log.Info("intent recorded, login required",
			sl.Op(op), slog.String("plan", string(plan)))
		return &Outcome{Kind: OutcomeLoginRequired, RedirectURL: "/login"}, nil
	}
	st.SetUserID(userID)

	return c.dispatch(ctx, st, userID, plan, op)
}

// Resume проверяет отложенное действие на странице возврата и
// возобновляет его не более одного раза на записанное значение.
func (c *Controller) Resume(ctx context.Context, st *clientstate.State) (*Outcome, error) {
	const op = "continuation.Resume"

	plan := st.IntendedAction()
	if plan == "" {
		return &Outcome{Kind: OutcomeNone}, nil
	}
	if !st.ConsumeAttempt() {
		// Попытка по этому значению уже была: остаток стирается,
		// повторная диспетчеризация запрещена.
		st.ClearIntendedAction()
		return &Outcome{Kind: OutcomeNone}, nil
	}

	userID, ok := c.auth.CheckAuth(ctx, st.AuthToken())
	if !ok {
		st.ClearIntendedAction()
		c.log.Info("resume abandoned: user is not authenticated", sl.Op(op))
		return &Outcome{Kind: OutcomeAbandoned, RedirectURL: "/login"}, nil
	}
	st.SetUserID(userID)

	c.log.Info("resuming intended action",
		sl.Op(op), slog.String("plan", string(plan)), slog.String("user_id", userID))
	return c.dispatch(ctx, st, userID, plan, op)
}

// dispatch выполняет сам старт. Перед списанием статус перепроверяется:
// если доступ уже есть (оплата завершилась в другой вкладке), действие
// стирается и пользователь уходит на дашборд без повторного списания.
func (c *Controller) dispatch(ctx context.Context, st *clientstate.State, userID string, plan models.PlanType, op string) (*Outcome, error) {
	status, err := c.subs.CheckStatus(ctx, userID)
	if err != nil {
		// Fail closed: недоказанный доступ считается отсутствием доступа,
		// дубль отсечёт серверная идемпотентность.
		c.log.Warn("subscription status check failed before dispatch", sl.Op(op), sl.Err(err))
	} else if status.HasAccess {
		st.ClearIntendedAction()
		return &Outcome{Kind: OutcomeAlreadySubscribed, RedirectURL: "/dashboard"}, nil
	}

	email := ""
	if session, ok := c.sessions.Get(st.AuthToken()); ok {
		email = session.Email
	}

	if plan == models.PlanTrial {
		eligibility, err := c.subs.CheckTrialEligibility(ctx, userID)
		if err != nil {
			st.ClearIntendedAction()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !eligibility.Eligible {
			st.ClearIntendedAction()
			return &Outcome{Kind: OutcomeNotEligible, Message: eligibility.Message}, nil
		}
		checkout, err := c.subs.StartTrial(ctx, userID, email)
		st.ClearIntendedAction()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &Outcome{
			Kind:        OutcomeCheckout,
			RedirectURL: checkout.AuthorizationURL,
			Reference:   checkout.Reference,
		}, nil
	}

	checkout, err := c.subs.StartPaidSubscription(ctx, email, userID, plan)
	st.ClearIntendedAction()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Outcome{
		Kind:        OutcomeCheckout,
		RedirectURL: checkout.AuthorizationURL,
		Reference:   checkout.Reference,
	}, nil
}
