package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/service"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 2
	defaultBaseBackoff = 100 * time.Millisecond

	refreshCookieName = "jwt"
)

// Client talks to the notes API over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL     string
	http        *http.Client
	maxRetries  uint64
	baseBackoff time.Duration

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets how many times a failed read is retried and the initial backoff.
func WithRetry(maxRetries uint64, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// WithAccessToken starts the client with an access token obtained elsewhere.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		http:        &http.Client{Timeout: defaultTimeout},
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBaseBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AccessToken returns the current access token.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// Login authenticates and stores the returned access token and refresh cookie.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	resp, err := c.send(ctx, http.MethodPost, "/auth", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = out.AccessToken
	for _, cookie := range resp.Cookies() {
		if cookie.Name == refreshCookieName {
			c.refreshToken = cookie.Value
		}
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	refreshToken := c.refreshToken
	c.mu.RUnlock()
	if refreshToken == "" {
		return ErrNotLoggedIn
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/auth/refresh", nil)
	if err != nil {
		return err
	}
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: refreshToken})

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if _, err := c.do(req, &out); err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = out.AccessToken
	c.mu.Unlock()
	return nil
}

// Logout clears the refresh cookie on the server and forgets both tokens.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.RLock()
	refreshToken := c.refreshToken
	c.mu.RUnlock()

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil {
		return err
	}
	if refreshToken != "" {
		req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: refreshToken})
	}
	if _, err := c.do(req, nil); err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken, c.refreshToken = "", ""
	c.mu.Unlock()
	return nil
}

// GetUsers fetches the user directory.
func (c *Client) GetUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetNotes fetches every note with its owner's username.
func (c *Client) GetNotes(ctx context.Context) ([]service.NoteWithUsername, error) {
	var notes []service.NoteWithUsername
	if err := c.get(ctx, "/notes", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateUser adds a user and returns the server's message.
func (c *Client) CreateUser(ctx context.Context, input service.CreateUserInput) (string, error) {
	return c.message(ctx, http.MethodPost, "/users", input)
}

// UpdateUser updates a user and returns the server's message.
func (c *Client) UpdateUser(ctx context.Context, input service.UpdateUserInput) (string, error) {
	return c.message(ctx, http.MethodPatch, "/users", input)
}

// DeleteUser removes a user and returns the server's confirmation.
func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	return c.confirmation(ctx, "/users", id)
}

// CreateNote adds a note and returns the server's message.
func (c *Client) CreateNote(ctx context.Context, input service.CreateNoteInput) (string, error) {
	return c.message(ctx, http.MethodPost, "/notes", input)
}

// UpdateNote updates a note and returns the server's message.
func (c *Client) UpdateNote(ctx context.Context, input service.UpdateNoteInput) (string, error) {
	return c.message(ctx, http.MethodPatch, "/notes", input)
}

// DeleteNote removes a note and returns the server's confirmation.
func (c *Client) DeleteNote(ctx context.Context, id string) (string, error) {
	return c.confirmation(ctx, "/notes", id)
}

func (c *Client) message(ctx context.Context, method, path string, body interface{}) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if _, err := c.send(ctx, method, path, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// confirmation issues a DELETE, whose reply is a bare JSON string.
func (c *Client) confirmation(ctx context.Context, path, id string) (string, error) {
	var out string
	if _, err := c.send(ctx, http.MethodDelete, path, map[string]string{"id": id}, &out); err != nil {
		return "", err
	}
	return out, nil
}

// get performs an authenticated GET, retrying transient failures.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.baseBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, http.MethodGet, path, nil)
		if err != nil {
			return err
		}
		_, err = c.do(req, out)
		if err != nil && isRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends req and decodes a successful reply into out.
func (c *Client) do(req *http.Request, out interface{}) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, decodeAPIError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp, fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
		}
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// isRetryable reports whether a failed read is worth another attempt.
func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
