package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
)

// Client speaks the Resource Service contract over HTTP. It performs no
// retries, no deduplication and sets no timeout of its own; a failed request
// is terminal for that attempt and the caller re-triggers manually.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient constructs a Client for the given Resource Service base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token from the last successful authentication.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken installs a bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// AuthResult is the outcome of an authentication attempt.
type AuthResult struct {
	IsAuthenticated bool    `json:"isAuthenticated"`
	Role            *string `json:"role"`
	Token           string  `json:"token"`
}

// Authenticate checks credentials. The call itself never fails on bad
// credentials; inspect IsAuthenticated. On success the returned token is
// retained for subsequent requests.
func (c *Client) Authenticate(ctx context.Context, userID, password string) (AuthResult, error) {
	var res AuthResult
	body := map[string]string{"userId": userID, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/authenticate", body, &res); err != nil {
		return AuthResult{}, err
	}
	if res.IsAuthenticated {
		c.SetToken(res.Token)
	}
	return res, nil
}

type registerResult struct {
	IsRegistered bool   `json:"isRegistered"`
	Message      string `json:"message"`
}

// Register creates a new account. A taken handle maps to ErrDuplicateKey and
// causes no account mutation server-side.
func (c *Client) Register(ctx context.Context, userID, password, role string) error {
	body := map[string]string{"userId": userID, "password": password, "role": role}
	var res registerResult
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &res); err != nil {
		return err
	}
	if !res.IsRegistered {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, res.Message)
	}
	return nil
}

// Logout revokes the retained token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

type problemBody struct {
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do issues one request and decodes the response. Transport failures map to
// ErrNetwork, 404 to ErrNotFound, 401/403 to ErrForbidden.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var problem problemBody
		_ = json.NewDecoder(res.Body).Decode(&problem)
		detail := problem.Detail
		if detail == "" {
			detail = problem.Message
		}
		switch res.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, detail)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrForbidden, detail)
		default:
			return fmt.Errorf("console: %s %s: status %d: %s", method, path, res.StatusCode, detail)
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("console: decode %s %s: %w", method, path, err)
	}
	return nil
}
