package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/diplomadesk/internal/client/store"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

func TestPersistentJar_SurvivesRestart(t *testing.T) {
	s := store.NewMemoryStore()
	u, _ := url.Parse("http://127.0.0.1:8080/api/auth/login")

	jar, err := newPersistentJar(s, logging.Nop())
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: "refresh_token", Value: "r1", Path: "/"}})

	restarted, err := newPersistentJar(s, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, restarted.restore("http://127.0.0.1:8080"))

	refresh, _ := url.Parse("http://127.0.0.1:8080/api/auth/refresh-token")
	cookies := restarted.Cookies(refresh)
	require.Len(t, cookies, 1)
	assert.Equal(t, "r1", cookies[0].Value)
}

func TestPersistentJar_ExpiredCookieIsForgotten(t *testing.T) {
	s := store.NewMemoryStore()
	u, _ := url.Parse("http://127.0.0.1:8080/api/auth/login")

	jar, err := newPersistentJar(s, logging.Nop())
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: "refresh_token", Value: "r1", Path: "/"}})
	jar.SetCookies(u, []*http.Cookie{{Name: "refresh_token", Value: "", Path: "/", MaxAge: -1}})

	raw, err := s.Get(context.Background(), cookieKeyPrefix+"127.0.0.1:8080")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestPersistentJar_RestoreWithNothingSaved(t *testing.T) {
	jar, err := newPersistentJar(store.NewMemoryStore(), logging.Nop())
	require.NoError(t, err)
	assert.NoError(t, jar.restore("http://example.test"))
}

func TestPersistentJar_RestoreDropsLapsedCookies(t *testing.T) {
	s := store.NewMemoryStore()
	u, _ := url.Parse("http://127.0.0.1:8080/api/auth/login")
	now := time.Now()

	jar, err := newPersistentJar(s, logging.Nop())
	require.NoError(t, err)
	jar.now = func() time.Time { return now }
	jar.SetCookies(u, []*http.Cookie{
		{Name: "refresh_token", Value: "r1", Path: "/", MaxAge: 3600},
		{Name: "theme", Value: "dark", Path: "/", Expires: now.Add(48 * time.Hour)},
	})

	raw, err := s.Get(context.Background(), cookieKeyPrefix+"127.0.0.1:8080")
	require.NoError(t, err)
	var saved []savedCookie
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Len(t, saved, 2)
	for _, c := range saved {
		assert.False(t, c.Expires.IsZero(), c.Name)
	}

	restarted, err := newPersistentJar(s, logging.Nop())
	require.NoError(t, err)
	restarted.now = func() time.Time { return now.Add(2 * time.Hour) }
	require.NoError(t, restarted.restore("http://127.0.0.1:8080"))

	cookies := restarted.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "theme", cookies[0].Name)
}

func TestPersistentJar_RestoredCookieKeepsExpiry(t *testing.T) {
	s := store.NewMemoryStore()
	u, _ := url.Parse("http://127.0.0.1:8080/api/auth/login")
	now := time.Now()
	exp := now.Add(time.Hour).Truncate(time.Second)

	jar, err := newPersistentJar(s, logging.Nop())
	require.NoError(t, err)
	jar.SetCookies(u, []*http.Cookie{{Name: "refresh_token", Value: "r1", Path: "/", Expires: exp}})

	restarted, err := newPersistentJar(s, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, restarted.restore("http://127.0.0.1:8080"))
	require.Len(t, restarted.Cookies(u), 1)

	// Saving an unrelated cookie rewrites the record; the restored expiry
	// must survive it.
	restarted.SetCookies(u, []*http.Cookie{{Name: "theme", Value: "dark", Path: "/"}})

	raw, err := s.Get(context.Background(), cookieKeyPrefix+"127.0.0.1:8080")
	require.NoError(t, err)
	var saved []savedCookie
	require.NoError(t, json.Unmarshal(raw, &saved))

	byName := map[string]savedCookie{}
	for _, c := range saved {
		byName[c.Name] = c
	}
	require.Contains(t, byName, "refresh_token")
	assert.True(t, exp.Equal(byName["refresh_token"].Expires))
	assert.True(t, byName["theme"].Expires.IsZero())
}
