// Package client is a Go client for the TaskPro API. It owns the session
// explicitly through a SessionStore, refreshes the access token once on a
// 401 and keeps a normalized Cache of everything it has fetched.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"taskpro-backend/internal/apperror"
)

const refreshPath = "/auth/refresh-token"

var (
	// ErrSessionExpired is returned when a 401 could not be recovered by a
	// refresh. The stored session has been cleared by then.
	ErrSessionExpired = errors.New("session expired")
	ErrNotLoggedIn    = errors.New("not logged in")
)

type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
	cache   *Cache

	// serializes refreshes so concurrent 401s rotate the token only once
	refreshMu sync.Mutex
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// New returns a client for baseURL, which includes the /api prefix.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   NewMemoryStore(),
		cache:   NewCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Cache() *Cache {
	return c.cache
}

// Session returns the stored session, or nil when logged out.
func (c *Client) Session() (*Session, error) {
	return c.store.Load()
}

func (c *Client) LoggedIn() bool {
	session, err := c.store.Load()
	return err == nil && session.LoggedIn()
}

// do sends one request. Authenticated calls that come back 401 trigger a
// single refresh and one retry with the new access token.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := encode(body)
	if err != nil {
		return err
	}

	session, err := c.store.Load()
	if err != nil {
		return err
	}
	token := ""
	if session != nil {
		token = session.Token
	}

	status, data, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized && token != "" {
		token, err = c.refresh(ctx, token)
		if err != nil {
			return err
		}
		status, data, err = c.send(ctx, method, path, payload, token)
		if err != nil {
			return err
		}
	}
	return decode(status, data, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// refresh rotates the token pair. staleToken is the access token that was
// rejected; if another caller already replaced it the new one is reused.
func (c *Client) refresh(ctx context.Context, staleToken string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	session, err := c.store.Load()
	if err != nil {
		return "", err
	}
	if session == nil || session.RefreshToken == "" {
		c.expire()
		return "", ErrSessionExpired
	}
	if session.Token != staleToken {
		return session.Token, nil
	}

	payload, _ := json.Marshal(map[string]string{"refreshToken": session.RefreshToken})
	status, data, err := c.send(ctx, http.MethodPost, refreshPath, payload, "")
	if err != nil {
		return "", err
	}

	var rotated Session
	if err := decode(status, data, &rotated); err != nil || rotated.Token == "" {
		log.Printf("[Client] refresh failed (status %d): %v", status, err)
		c.expire()
		return "", ErrSessionExpired
	}
	if rotated.RefreshToken == "" {
		rotated.RefreshToken = session.RefreshToken
	}
	if err := c.store.Save(&rotated); err != nil {
		return "", err
	}
	return rotated.Token, nil
}

func (c *Client) expire() {
	if err := c.store.Clear(); err != nil {
		log.Printf("[Client] failed to clear session: %v", err)
	}
	c.cache.Reset()
}

func encode(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return payload, nil
}

// decode turns a non-2xx response into an *apperror.Error carrying the
// server's message, so callers can match it with errors.Is.
func decode(status int, data []byte, out any) error {
	if status < 200 || status > 299 {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
			body.Message = http.StatusText(status)
		}
		return apperror.New(status, body.Message)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
