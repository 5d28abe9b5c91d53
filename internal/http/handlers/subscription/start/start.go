// Package start реализует HTTP-обработчик клика по тарифу.
//
// Обработчик публичный: неаутентифицированный пользователь не получает
// отказ — его намерение записывается в cookie до ответа, и после входа
// поток возобновляется автоматически.
package start

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/bookhub-web/internal/clientstate"
	"github.com/magabrotheeeer/bookhub-web/internal/continuation"
	"github.com/magabrotheeeer/bookhub-web/internal/gateway/backendapi"
	"github.com/magabrotheeeer/bookhub-web/internal/http/response"
	"github.com/magabrotheeeer/bookhub-web/internal/lib/sl"
	"github.com/magabrotheeeer/bookhub-web/internal/models"
)

// Request — структура входных данных.
type Request struct {
	Plan models.PlanType `json:"plan" validate:"required,oneof=monthly yearly trial"`
}

// Service описывает интерфейс шага старта подписки.
type Service interface {
	Start(ctx context.Context, st *clientstate.State, plan models.PlanType) (*continuation.Outcome, error)
}

// Handler обрабатывает HTTP-запросы старта подписки.
type Handler struct {
	log      *slog.Logger
	flow     Service
	states   *clientstate.Store
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, flow Service, states *clientstate.Store) *Handler {
	return &Handler{log: log, flow: flow, states: states, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Старт подписки
// @Description Запускает оформление тарифа или записывает намерение и ведёт на вход.
// @Tags Subscription
// @Accept  json
// @Produce  json
// @Param request body Request true "Выбранный тариф"
// @Success 200 {object} response.Response "Ссылка на оплату либо редирект"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /subscription/start [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.start"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	state := h.states.Load(r)
	outcome, err := h.flow.Start(r.Context(), state, req.Plan)

	// Изменения состояния (записанное намерение, стёртое намерение)
	// сохраняются до ответа при любом исходе.
	if saveErr := state.Save(r, w); saveErr != nil {
		log.Error("failed to save client state", sl.Err(saveErr))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to start subscription, try again"))
		return
	}

	if err != nil {
		log.Error("subscription start failed", sl.Err(err))
		if apiErr, ok := backendapi.AsAPIError(err); ok && apiErr.IsBusinessRule() {
			render.JSON(w, r, response.Info(apiErr.Message, "/pricing"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to start subscription, try again"))
		return
	}

	renderOutcome(w, r, outcome)
}

func renderOutcome(w http.ResponseWriter, r *http.Request, outcome *continuation.Outcome) {
	switch outcome.Kind {
	case continuation.OutcomeLoginRequired:
		render.JSON(w, r, response.Info("please log in to continue", outcome.RedirectURL))
	case continuation.OutcomeAlreadySubscribed:
		render.JSON(w, r, response.Info("you already have an active subscription", outcome.RedirectURL))
	case continuation.OutcomeNotEligible:
		render.JSON(w, r, response.Info(outcome.Message, "/pricing"))
	case continuation.OutcomeCheckout:
		render.JSON(w, r, response.OKWithData(map[string]any{
			"authorization_url": outcome.RedirectURL,
			"reference":         outcome.Reference,
		}))
	default:
		render.JSON(w, r, response.OKWithRedirect("/dashboard"))
	}
}
