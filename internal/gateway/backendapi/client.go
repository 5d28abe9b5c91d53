// Package backendapi содержит общий HTTP-клиент внешнего REST-бэкенда
// BookHub. Шлюзы (auth, subscription, catalog, card) строятся поверх него
// и получают единый способ формирования запросов, разбора JSON и
// типизированных ошибок с дословным текстом бэкенда.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client — клиент внешнего бэкенда.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт новый клиент API BookHub.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError — ошибка уровня API с дословным сообщением бэкенда.
// Code заполняется для бизнес-отказов (ALREADY_ACTIVE, TRIAL_USED и т.п.).
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend: %s (%s)", e.Message, e.Code)
	}
	return "backend: " + e.Message
}

// IsBusinessRule сообщает, является ли ошибка корректным отказом системы,
// а не сбоем: такие ответы показываются как информация, не как ошибка.
func (e *APIError) IsBusinessRule() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 &&
		e.StatusCode != http.StatusUnauthorized && e.StatusCode != http.StatusForbidden
}

// AsAPIError извлекает *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody — форма тела ошибки, которую отдаёт бэкенд.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewRequest формирует запрос к бэкенду. Непустой token добавляется
// заголовком Authorization: Bearer.
func (c *Client) NewRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// DoJSON выполняет запрос и декодирует JSON-ответ в out (nil — тело не
// нужно). Не-2xx статус превращается в *APIError с текстом бэкенда.
func (c *Client) DoJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// DoRaw выполняет запрос и возвращает тело как есть вместе с Content-Type.
// Используется для выдачи файлов, проксируемых от бэкенда.
func (c *Client) DoRaw(req *http.Request) ([]byte, string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", decodeError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: "unexpected status: " + resp.Status}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
