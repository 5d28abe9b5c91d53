package models

import "time"

// Статусы подписки, как их возвращает бэкенд.
const (
	StatusActive   = "active"
	StatusTrialing = "trialing"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
	StatusNone     = "none"
)

// SubscriptionStatus — неизменяемый снимок биллингового состояния
// пользователя. Перезапрашивается по требованию, никогда не мутируется
// локально. HasAccess вычисляется на сервере и является единственным
// источником истины для допуска к контенту.
type SubscriptionStatus struct {
	Status        string     `json:"status"`
	HasAccess     bool       `json:"has_access"`
	TrialEnd      *time.Time `json:"trial_end,omitempty"`
	InTrial       bool       `json:"in_trial"`
	TrialHasEnded bool       `json:"trial_has_ended"`
	Message       string     `json:"message,omitempty"`
}

// TrialEligibility — ответ сервера на проверку права на пробный период.
// Правило целиком серверное, клиент не выводит eligible локально.
type TrialEligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message"`
}

// Checkout — результат инициализации оплаты: адрес авторизации у
// платёжного провайдера и ссылка на транзакцию.
type Checkout struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
	Message          string `json:"message,omitempty"`
}

// PlanType обозначает тарифный план, который пользователь собирался
// оформить до ухода на внешний редирект.
type PlanType string

// Допустимые значения отложенного действия.
const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
	PlanTrial   PlanType = "trial"
)

// Valid сообщает, является ли значение известным тарифом.
func (p PlanType) Valid() bool {
	switch p {
	case PlanMonthly, PlanYearly, PlanTrial:
		return true
	}
	return false
}
