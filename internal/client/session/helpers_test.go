package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/diplomadesk/internal/client/store"
)

// ---- tokens ----

var epochStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "admin", ID: exp.String()}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

// ---- fake remote ----

type fakeRemote struct {
	mu sync.Mutex

	// gate, when set, holds every RefreshToken call until it is closed.
	gate chan struct{}

	refreshTokens []string
	refreshErr    error
	refreshCalls  atomic.Int32

	logoutErr       error
	logoutCalls     int
	lastLogoutToken string

	profile         Profile
	accountErr      error
	accountCalls    int
	lastAccountAuth string
}

func (f *fakeRemote) RefreshToken(ctx context.Context) (string, error) {
	f.refreshCalls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return "", f.refreshErr
	}
	if len(f.refreshTokens) == 0 {
		return "", errors.New("fake: no refresh token queued")
	}
	tok := f.refreshTokens[0]
	f.refreshTokens = f.refreshTokens[1:]
	return tok, nil
}

func (f *fakeRemote) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.lastLogoutToken = token
	return f.logoutErr
}

func (f *fakeRemote) AccountInfo(_ context.Context, token string) (Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	f.lastAccountAuth = token
	return f.profile, f.accountErr
}

func (f *fakeRemote) logouts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutCalls
}

// ---- fake clock ----

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped atomic.Bool
}

func (t *fakeTimer) Stop() bool { return !t.stopped.Swap(true) }

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Timers() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*fakeTimer(nil), c.timers...)
}

func (c *fakeClock) Last(t *testing.T) *fakeTimer {
	t.Helper()
	timers := c.Timers()
	require.NotEmpty(t, timers, "no timer scheduled")
	return timers[len(timers)-1]
}

// ---- harness ----

type harness struct {
	c         *Coordinator
	remote    *fakeRemote
	clock     *fakeClock
	durable   *store.MemoryStore
	ephemeral *store.MemoryStore
	metrics   *Metrics

	redirects atomic.Int32
	lastCause atomic.Value
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		remote:    &fakeRemote{},
		clock:     &fakeClock{now: epochStart},
		durable:   store.NewMemoryStore(),
		ephemeral: store.NewMemoryStore(),
		metrics:   NewMetrics(nil),
	}

	base := []Option{
		WithClock(h.clock.Now, h.clock.AfterFunc),
		WithMetrics(h.metrics),
		WithOnExpired(func(err error) {
			h.redirects.Add(1)
			h.lastCause.Store(err)
		}),
	}
	h.c = New(h.remote, store.NewTiers(h.durable, h.ephemeral), append(base, opts...)...)
	t.Cleanup(h.c.Close)
	return h
}

func (h *harness) login(t *testing.T, exp time.Time, remember bool) string {
	t.Helper()
	tok := makeToken(t, exp)
	err := h.c.Login(context.Background(), Credential{
		AccessToken: tok,
		Profile:     Profile{ID: "u-1", Username: "admin", DisplayName: "Admin", Role: "admin"},
	}, remember)
	require.NoError(t, err)
	return tok
}

func (h *harness) stored(t *testing.T, s *store.MemoryStore) (Credential, bool) {
	t.Helper()
	raw, err := s.Get(context.Background(), DefaultStorageKey)
	require.NoError(t, err)
	if raw == nil {
		return Credential{}, false
	}
	cred, err := unmarshalCredential(raw)
	require.NoError(t, err)
	return cred, true
}

func (h *harness) seed(t *testing.T, s *store.MemoryStore, cred Credential) {
	t.Helper()
	raw, err := cred.marshal()
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), DefaultStorageKey, raw))
}

func newMemoryTiers() *store.Tiers {
	return store.NewTiers(store.NewMemoryStore(), store.NewMemoryStore())
}
