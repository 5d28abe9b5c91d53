package continuation

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// StatusChecker описывает проверку статуса подписки для опроса.
type StatusChecker interface {
	CheckStatus(ctx context.Context, userID string) (*models.SubscriptionStatus, error)
}

// PollResult — терминальный исход опроса активации.
type PollResult int

const (
	// PollActivated — доступ подтверждён, можно вести на дашборд.
	PollActivated PollResult = iota
	// PollPending — бюджет попыток исчерпан, активация ещё идёт.
	// Это не отказ: активация через webhook может легитимно запаздывать.
	PollPending
)

// Poller ждёт активации подписки после возврата с внешней оплаты,
// опрашивая статус с фиксированным интервалом и жёстким потолком
// попыток. Отмена неявная — по исчерпанию бюджета или контексту.
type Poller struct {
	subs     StatusChecker
	interval time.Duration
	budget   int
	log      *slog.Logger
}

// NewPoller создает новый Poller.
func NewPoller(subs StatusChecker, interval time.Duration, budget int, log *slog.Logger) *Poller {
	return &Poller{subs: subs, interval: interval, budget: budget, log: log}
}

// Wait опрашивает статус до budget раз. Ошибка проверки считается
// отсутствием доступа и расходует попытку; бесшумных бесконечных
// повторов нет — каждый исход терминален.
func (p *Poller) Wait(ctx context.Context, userID string) (PollResult, error) {
	const op = "continuation.Poller.Wait"

	for attempt := 1; attempt <= p.budget; attempt++ {
		status, err := p.subs.CheckStatus(ctx, userID)
		if err != nil {
			p.log.Warn("activation check failed",
				sl.Op(op), slog.Int("attempt", attempt), sl.Err(err))
		} else if status.HasAccess {
			p.log.Info("subscription activated",
				sl.Op(op), slog.Int("attempt", attempt))
			return PollActivated, nil
		}

		if attempt == p.budget {
			break
		}
		select {
		case <-ctx.Done():
			return PollPending, ctx.Err()
		case <-time.After(p.interval):
		}
	}
	return PollPending, nil
}
