// Package api is the HTTP client of the fieldkeeper server.
package api

//go:generate moq -out clientapi_mock.go . ClientAPI

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/fieldkeeper/pkg/api"
)

// ClientAPI is the subset of the server API used by the client services.
type ClientAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	GetSalt(ctx context.Context, username string) (*api.SaltResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	SubmitReport(ctx context.Context, token, idempotencyKey string, report api.Report) (*api.MutationResponse, error)
	DeleteReport(ctx context.Context, token, idempotencyKey, reportID string) (*api.MutationResponse, error)
	AddStaff(ctx context.Context, token, idempotencyKey string, staff api.StaffRecord) (*api.MutationResponse, error)
	UpdateStaff(ctx context.Context, token, idempotencyKey string, staff api.StaffRecord) (*api.MutationResponse, error)
	Resync(ctx context.Context, token string) (*api.ResyncResponse, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
}

var _ ClientAPI = (*Client)(nil)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// StatusCode extracts the HTTP status from err, 0 when err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether the server answered 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// Permanent reports whether retrying the same request cannot succeed:
// a 4xx other than 401, 404, 408 and 429.
func Permanent(err error) bool {
	code := StatusCode(err)
	if code < 400 || code >= 500 {
		return false
	}
	switch code {
	case http.StatusUnauthorized, http.StatusNotFound,
		http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return true
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization и Idempotency-Key при редиректе
				for _, h := range []string{"Authorization", api.IdempotencyKeyHeader} {
					if v := via[0].Header.Get(h); v != "" {
						req.Header.Set(h, v)
					}
				}
				return nil
			},
		},
	}
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// GetSalt получает public_salt пользователя
func (c *Client) GetSalt(ctx context.Context, username string) (*api.SaltResponse, error) {
	var resp api.SaltResponse
	path := "/api/v1/auth/salt/" + url.PathEscape(username)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get salt request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару токенов
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	req := api.RefreshRequest{RefreshToken: refreshToken}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh token на сервере
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	req := api.LogoutRequest{RefreshToken: refreshToken}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout", req, nil, withToken(accessToken)); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// SubmitReport отправляет полевой отчет
func (c *Client) SubmitReport(ctx context.Context, token, idempotencyKey string, report api.Report) (*api.MutationResponse, error) {
	var resp api.MutationResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/reports", report, &resp,
		withToken(token), withIdempotencyKey(idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("submit report request failed: %w", err)
	}
	return &resp, nil
}

// DeleteReport удаляет отчет по id
func (c *Client) DeleteReport(ctx context.Context, token, idempotencyKey, reportID string) (*api.MutationResponse, error) {
	var resp api.MutationResponse
	path := "/api/v1/reports/" + url.PathEscape(reportID)
	err := c.doRequest(ctx, http.MethodDelete, path, nil, &resp,
		withToken(token), withIdempotencyKey(idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("delete report request failed: %w", err)
	}
	return &resp, nil
}

// AddStaff создает запись о сотруднике
func (c *Client) AddStaff(ctx context.Context, token, idempotencyKey string, staff api.StaffRecord) (*api.MutationResponse, error) {
	var resp api.MutationResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/staff", staff, &resp,
		withToken(token), withIdempotencyKey(idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("add staff request failed: %w", err)
	}
	return &resp, nil
}

// UpdateStaff обновляет запись о сотруднике
func (c *Client) UpdateStaff(ctx context.Context, token, idempotencyKey string, staff api.StaffRecord) (*api.MutationResponse, error) {
	var resp api.MutationResponse
	path := "/api/v1/staff/" + url.PathEscape(staff.ID)
	err := c.doRequest(ctx, http.MethodPut, path, staff, &resp,
		withToken(token), withIdempotencyKey(idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("update staff request failed: %w", err)
	}
	return &resp, nil
}

// Resync получает полный срез данных пользователя
func (c *Client) Resync(ctx context.Context, token string) (*api.ResyncResponse, error) {
	var resp api.ResyncResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/resync", nil, &resp, withToken(token)); err != nil {
		return nil, fmt.Errorf("resync request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) {
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

func withIdempotencyKey(key string) requestOption {
	return func(r *http.Request) {
		if key != "" {
			r.Header.Set(api.IdempotencyKeyHeader, key)
		}
	}
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any, opts ...requestOption) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			statusErr.Code = errResp.Error
			statusErr.Message = errResp.Message
		} else {
			statusErr.Message = string(bytes.TrimSpace(respBody))
		}
		return statusErr
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
