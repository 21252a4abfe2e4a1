// Package api реализует HTTP-клиент для REST API витрины магазина.
//
// Клиент прикрепляет bearer-токен из хранилища учётных данных к каждому
// исходящему запросу и при ответе 401 с признаком истёкшей сессии один раз
// обменивает refresh-токен на новый access-токен и повторяет исходный запрос.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/mmeshcher/storefront-client/internal/storage"
)

// sessionExpiredMarker — подстрока в сообщении сервера, отмечающая истёкшую сессию.
const sessionExpiredMarker = "session expired"

// ErrorKind классифицирует ошибку HTTP-клиента.
type ErrorKind int

const (
	// KindUnknown — ошибка, не попавшая ни в одну из известных категорий.
	KindUnknown ErrorKind = iota
	// KindNetwork — транспортная ошибка: ответ от сервера не получен.
	KindNetwork
	// KindHTTP — сервер ответил статусом, отличным от успешного.
	KindHTTP
)

// Error описывает структурированную ошибку вызова API.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

// Error возвращает текст ошибки.
func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return "api: " + e.Message
}

// IsSessionExpired сообщает, отмечена ли ошибка признаком истёкшей сессии.
func (e *Error) IsSessionExpired() bool {
	return e.Kind == KindHTTP && e.StatusCode == http.StatusUnauthorized &&
		strings.Contains(strings.ToLower(e.Message), sessionExpiredMarker)
}

// ErrorMessage извлекает человекочитаемый текст из ошибки операции:
// предпочитается сообщение сервера, иначе текст транспортной ошибки.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Client инкапсулирует HTTP-взаимодействие с API витрины.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	creds      storage.Store
	logger     *zap.Logger
}

// Option настраивает создаваемый клиент.
type Option func(*Client)

// WithTransportRetries задаёт число транспортных повторов при сетевых сбоях.
// По умолчанию повторов нет: операции уровня срезов не повторяются автоматически.
func WithTransportRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.httpClient.RetryMax = n
		}
	}
}

// WithTimeout задаёт таймаут одного HTTP-запроса.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = d
	}
}

// New создаёт клиент API витрины с указанным базовым адресом.
func New(baseURL string, creds storage.Store, logger *zap.Logger, opts ...Option) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.HTTPClient = cleanhttp.DefaultPooledClient()
	httpClient.HTTPClient.Timeout = 10 * time.Second
	httpClient.RetryMax = 0
	httpClient.Logger = nil

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		creds:      creds,
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do выполняет запрос к API с одним возможным повтором после обновления токена.
// Повтор выполняется не более одного раза на исходный запрос и только если сам
// запрос не является запросом обновления токена.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode request: %v", err)}
		}
		payload = data
	}

	const maxAuthRetries = 1

	for attempt := 0; ; attempt++ {
		status, data, err := c.send(ctx, method, path, payload, true)
		if err != nil {
			return err
		}

		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			if out == nil || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return &Error{Kind: KindUnknown, Message: fmt.Sprintf("decode response: %v", err)}
			}
			return nil
		}

		apiErr := &Error{Kind: KindHTTP, StatusCode: status, Message: serverMessage(status, data)}

		if apiErr.IsSessionExpired() && attempt < maxAuthRetries {
			if refreshErr := c.refreshAccessToken(ctx); refreshErr != nil {
				if errors.Is(refreshErr, storage.ErrNotFound) {
					return apiErr
				}
				return refreshErr
			}
			continue
		}

		return apiErr
	}
}

// send выполняет один HTTP-запрос и возвращает статус и тело ответа.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, withAuth bool) (int, []byte, error) {
	var body any
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")

	if withAuth {
		if token, err := c.creds.AccessToken(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &Error{Kind: KindNetwork, Message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("read response: %v", err)}
	}

	return resp.StatusCode, data, nil
}

// refreshAccessToken обменивает refresh-токен на новый access-токен.
// При отсутствии refresh-токена или неудачном обмене все сохранённые
// учётные данные очищаются: это эквивалент принудительного выхода.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	refreshToken, err := c.creds.RefreshToken()
	if err != nil {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Error("clear credentials", zap.Error(clearErr))
		}
		return fmt.Errorf("read refresh token: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode refresh request: %v", err)}
	}

	status, data, err := c.send(ctx, http.MethodPost, "/users/refresh", payload, false)
	if err != nil {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Error("clear credentials", zap.Error(clearErr))
		}
		return err
	}

	if status != http.StatusOK {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Error("clear credentials", zap.Error(clearErr))
		}
		return &Error{Kind: KindHTTP, StatusCode: status, Message: serverMessage(status, data)}
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.AccessToken == "" {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Error("clear credentials", zap.Error(clearErr))
		}
		return &Error{Kind: KindUnknown, Message: "refresh response has no access token"}
	}

	if err := c.creds.SaveAccessToken(resp.AccessToken); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}

	c.logger.Debug("access token refreshed")
	return nil
}

// serverMessage извлекает поле message из тела ошибки сервера.
func serverMessage(status int, data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(status)
}

// queryString собирает строку запроса, пропуская пустые значения.
func queryString(values url.Values) string {
	for k, vs := range values {
		empty := true
		for _, v := range vs {
			if v != "" {
				empty = false
				break
			}
		}
		if empty {
			values.Del(k)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
