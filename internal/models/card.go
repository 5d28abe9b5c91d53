package models

// Card — серверное представление сохранённого способа оплаты.
// Клиент только читает и отправляет запросы на изменение,
// состояние карт авторитетно хранит бэкенд.
type Card struct {
	ID        int64  `json:"id"`
	Last4     string `json:"last4"`
	CardType  string `json:"card_type"`
	Bank      string `json:"bank,omitempty"`
	Brand     string `json:"brand,omitempty"`
	ExpMonth  string `json:"exp_month"`
	ExpYear   string `json:"exp_year"`
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at,omitempty"`
}
