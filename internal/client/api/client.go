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

	"github.com/dmitrijs2005/diplomadesk/internal/client/session"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type envelope struct {
	ResultCode int             `json:"resultCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type tokenData struct {
	AccessToken string `json:"accessToken"`
}

// Client talks to one backend. It satisfies session.Remote.
type Client struct {
	baseURL string
	http    *http.Client
	paths   Paths
	log     logging.Logger
}

type Option func(*Client)

func WithPaths(p Paths) Option {
	return func(c *Client) { c.paths = p.withDefaults() }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for baseURL. hc should carry a cookie jar: the
// refresh endpoint is authorized by the session cookie.
func New(baseURL string, hc *http.Client, opts ...Option) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		paths:   DefaultPaths(),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Paths() Paths {
	return c.paths
}

// Login exchanges an identifier and password for an access token. The
// server also sets the session cookie used by RefreshToken.
func (c *Client) Login(ctx context.Context, identifier, secret string) (string, error) {
	var data tokenData
	req := loginRequest{Identifier: identifier, Secret: secret}
	if err := c.do(ctx, http.MethodPost, c.paths.Login, "", req, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", ErrEmptyToken
	}
	return data.AccessToken, nil
}

// RefreshToken asks for a new access token using the session cookie.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var data tokenData
	if err := c.do(ctx, http.MethodGet, c.paths.RefreshToken, "", nil, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", ErrEmptyToken
	}
	return data.AccessToken, nil
}

// Logout revokes the server-side session behind accessToken.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodGet, c.paths.Logout, accessToken, nil, nil)
}

// AccountInfo returns the profile of the account behind accessToken.
func (c *Client) AccountInfo(ctx context.Context, accessToken string) (session.Profile, error) {
	var p session.Profile
	if err := c.do(ctx, http.MethodGet, c.paths.AccountInfo, accessToken, nil, &p); err != nil {
		return session.Profile{}, err
	}
	return p, nil
}

// Get fetches path and decodes the envelope's data into out. The transport
// supplies the credential.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), rdr)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &env) != nil {
			env.Message = strings.TrimSpace(string(raw))
		}
		return &StatusError{Code: resp.StatusCode, Message: env.Message}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	if env.ResultCode != 0 {
		return &ResultError{Code: env.ResultCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode data from %s: %w", path, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// mapError keeps cancellation and session expiry intact and reports
// everything else as the server being unreachable.
func (c *Client) mapError(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, session.ErrSessionExpired):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
