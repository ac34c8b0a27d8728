// internal/identity/client.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config points the client at the external identity provider. The provider
// owns credentials and email-confirmation state; this service only brokers
// calls to it.
type Config struct {
	BaseURL    string
	ServiceKey string
}

// User is the provider's view of an identity.
type User struct {
	ID             string                 `json:"id"`
	Email          string                 `json:"email"`
	EmailConfirmed string                 `json:"email_confirmed_at,omitempty"`
	Metadata       map[string]interface{} `json:"user_metadata,omitempty"`
}

// ProviderError is a structured failure reported by the identity provider.
// Classification into the API error taxonomy happens one layer up, keyed on
// Code with a substring fallback over Message.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// SignUp creates a credential record with the provider and returns the new
// identity.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*User, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		payload["data"] = metadata
	}

	var user User
	if err := c.do(ctx, http.MethodPost, "/signup", "", payload, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &ProviderError{Status: http.StatusUnprocessableEntity, Code: "signup_failed", Message: "provider returned no user"}
	}
	return &user, nil
}

// SignInWithPassword validates credentials and returns the identity they
// belong to.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var session struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", payload, &session); err != nil {
		return nil, err
	}
	if session.User.ID == "" {
		return nil, &ProviderError{Status: http.StatusBadRequest, Code: "invalid_credentials", Message: "provider returned no user"}
	}
	return &session.User, nil
}

// SendRecovery asks the provider to email a password-reset link.
func (c *Client) SendRecovery(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/recover", "", map[string]string{"email": email}, nil)
}

// UpdatePassword completes a password reset using the recovery token the
// provider issued to the user.
func (c *Client) UpdatePassword(ctx context.Context, recoveryToken, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/user", recoveryToken, map[string]string{"password": newPassword}, nil)
}

// AdminGetUser fetches an identity by ID using the service key.
func (c *Client) AdminGetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+id, "", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AdminDeleteUser removes an identity and its credentials from the provider.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+id, "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	if bearer == "" {
		bearer = c.serviceKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseProviderError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}
	return nil
}

// parseProviderError tolerates the provider's two error body generations:
// {"error_code": "...", "msg": "..."} and {"error": "...",
// "error_description": "..."}.
func parseProviderError(status int, raw []byte) *ProviderError {
	var body struct {
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Err              string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(raw, &body)

	code := body.ErrorCode
	if code == "" {
		code = body.Err
	}
	message := body.Msg
	if message == "" {
		message = body.Message
	}
	if message == "" {
		message = body.ErrorDescription
	}
	return &ProviderError{Status: status, Code: code, Message: message}
}
