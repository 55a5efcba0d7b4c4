package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/diplomadesk/internal/client/session"
)

// ---- helpers ----

func writeEnvelope(w http.ResponseWriter, status, code int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"resultCode": code, "message": msg, "data": data})
}

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

// ---- tests ----

func TestLogin_SendsCredentialsAndReturnsToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"identifier": "admin", "secret": "pw"}, body)

		writeEnvelope(w, http.StatusOK, 0, "", map[string]string{"accessToken": "tok"})
	})

	tok, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestLogin_ResultCodeIsError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, 1001, "wrong password", nil)
	})

	_, err := c.Login(context.Background(), "admin", "bad")
	var re *ResultError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1001, re.Code)
	assert.Equal(t, "wrong password", re.Message)
}

func TestRefreshToken_EmptyTokenIsError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/refresh-token", r.URL.Path)
		writeEnvelope(w, http.StatusOK, 0, "", map[string]string{})
	})

	_, err := c.RefreshToken(context.Background())
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestLogoutAndAccountInfo_SendBearer(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/auth/logout":
			writeEnvelope(w, http.StatusOK, 0, "", nil)
		case "/api/account/info":
			writeEnvelope(w, http.StatusOK, 0, "", map[string]string{
				"id": "1", "username": "admin", "displayName": "Admin", "avatar": "a.png", "role": "admin",
			})
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	require.NoError(t, c.Logout(ctx, "tok"))

	p, err := c.AccountInfo(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, session.Profile{ID: "1", Username: "admin", DisplayName: "Admin", Avatar: "a.png", Role: "admin"}, p)
}

func TestGet_DecodesData(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/degree-types", r.URL.Path)
		writeEnvelope(w, http.StatusOK, 0, "", []map[string]string{{"code": "BSc"}, {"code": "MSc"}})
	})

	var out []map[string]string
	require.NoError(t, c.Get(context.Background(), "api/degree-types", &out))
	assert.Len(t, out, 2)
	assert.Equal(t, "MSc", out[1]["code"])
}

func TestDo_StatusErrors(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/401":
			writeEnvelope(w, http.StatusUnauthorized, 401, "token expired", nil)
		case "/500":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "boom\n")
		}
	})
	ctx := context.Background()

	err := c.Get(ctx, "/401", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "token expired", se.Message)

	err = c.Get(ctx, "/500", nil)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "boom", se.Message)
}

func TestDo_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, &http.Client{})
	err := c.Get(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

type expiringTransport struct{}

func (expiringTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, session.ErrSessionExpired
}

func TestDo_SessionExpiryPassesThrough(t *testing.T) {
	c := New("http://backend.invalid", &http.Client{Transport: expiringTransport{}})

	err := c.Get(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestDo_CancelledContext(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/x", nil)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestWithPaths_FillsDefaults(t *testing.T) {
	c := New("http://x", nil, WithPaths(Paths{Login: "/v2/login"}))

	p := c.Paths()
	assert.Equal(t, "/v2/login", p.Login)
	assert.Equal(t, DefaultPaths().RefreshToken, p.RefreshToken)
	assert.Equal(t, []string{"/v2/login", "/api/auth/refresh-token", "/api/auth/logout"}, p.Auth())
}

func TestClient_SatisfiesRemote(t *testing.T) {
	var _ session.Remote = (*Client)(nil)
}
