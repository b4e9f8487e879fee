package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/capsort/capsort/pkg/api"
)

// StatusError ошибка, возвращенная сервером с не-2xx статусом
// Kind повторяет поле kind из тела ответа (invalid_token, validation_failed и т.д.)
type StatusError struct {
	Kind       string
	Message    string
	Details    []api.FieldError
	StatusCode int
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	if len(e.Details) == 0 {
		return msg
	}

	fields := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		fields = append(fields, d.Field+": "+d.Message)
	}
	return msg + " (" + strings.Join(fields, "; ") + ")"
}

// IsUnauthorized сообщает, отклонил ли сервер токен
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// KindOf возвращает kind ошибки сервера или пустую строку
func KindOf(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового студента
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет вход студента
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// AdminLogin выполняет вход администратора
func (c *Client) AdminLogin(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/admin/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("admin login request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает текущего пользователя по токену
func (c *Client) Me(ctx context.Context, token string) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/me", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// ForgotPassword запрашивает письмо со ссылкой для сброса пароля
func (c *Client) ForgotPassword(ctx context.Context, req api.ForgotPasswordRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/forgot-password", "", req, &resp); err != nil {
		return nil, fmt.Errorf("forgot password request failed: %w", err)
	}
	return &resp, nil
}

// ResetPassword устанавливает новый пароль по токену из письма
func (c *Client) ResetPassword(ctx context.Context, req api.ResetPasswordRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/reset-password", "", req, &resp); err != nil {
		return nil, fmt.Errorf("reset password request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос; token добавляется как Bearer, если не пустой
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &StatusError{
				StatusCode: resp.StatusCode,
				Kind:       errResp.Kind,
				Message:    errResp.Error,
				Details:    errResp.Details,
			}
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
