package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/diplomadesk/internal/client/store"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

const (
	// DefaultStorageKey is the key the session record is stored under.
	DefaultStorageKey = "session"

	DefaultRefreshBuffer  = 5 * time.Minute
	DefaultRefreshTimeout = 30 * time.Second
)

// Remote is the slice of the backend the coordinator talks to. Refresh is
// authorized by the ambient session cookie, the other two by the access token.
type Remote interface {
	RefreshToken(ctx context.Context) (string, error)
	Logout(ctx context.Context, accessToken string) error
	AccountInfo(ctx context.Context, accessToken string) (Profile, error)
}

// Timer is the handle returned by the timer factory. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Coordinator owns the live credential. It is safe for concurrent use.
type Coordinator struct {
	remote Remote
	tiers  *store.Tiers
	key    string

	log       logging.Logger
	metrics   *Metrics
	buffer    time.Duration
	timeout   time.Duration
	now       func() time.Time
	afterFunc func(time.Duration, func()) Timer
	onExpired func(error)

	mu       sync.Mutex
	cred     Credential
	epoch    uint64 // bumped whenever the credential is replaced or reset
	timer    Timer
	timerGen uint64
	closed   bool

	flight   singleflight.Group
	inFlight atomic.Int32
	loading  atomic.Int32
}

// Option configures a Coordinator.
type Option func(*Coordinator)

func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithRefreshBuffer sets how long before expiry the proactive renewal fires.
func WithRefreshBuffer(d time.Duration) Option {
	return func(c *Coordinator) { c.buffer = d }
}

// WithRefreshTimeout bounds a single renewal round-trip.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

func WithStorageKey(key string) Option {
	return func(c *Coordinator) { c.key = key }
}

// WithOnExpired registers the redirect callback. It runs once each time an
// authenticated session ends without a logout, with the cause.
func WithOnExpired(fn func(error)) Option {
	return func(c *Coordinator) { c.onExpired = fn }
}

// WithClock replaces time.Now and time.AfterFunc.
func WithClock(now func() time.Time, afterFunc func(time.Duration, func()) Timer) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
		if afterFunc != nil {
			c.afterFunc = afterFunc
		}
	}
}

// New returns a coordinator with an empty, unauthenticated credential. Call
// Bootstrap to pick up a stored session.
func New(remote Remote, tiers *store.Tiers, opts ...Option) *Coordinator {
	c := &Coordinator{
		remote:  remote,
		tiers:   tiers,
		key:     DefaultStorageKey,
		log:     logging.Nop(),
		buffer:  DefaultRefreshBuffer,
		timeout: DefaultRefreshTimeout,
		now:     time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	c.log = c.log.With("component", "session", "instance", uuid.NewString()[:8])
	return c
}

// Credential returns a snapshot of the live credential.
func (c *Coordinator) Credential() Credential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred
}

// AccessToken returns the current token, or "" when there is none.
func (c *Coordinator) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred.AccessToken
}

func (c *Coordinator) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred.Authenticated
}

// IsLoading reports whether a bootstrap or a renewal is running.
func (c *Coordinator) IsLoading() bool {
	return c.loading.Load() > 0
}

func (c *Coordinator) beginLoading() {
	c.loading.Add(1)
	c.metrics.Loading.Inc()
}

func (c *Coordinator) endLoading() {
	c.loading.Add(-1)
	c.metrics.Loading.Dec()
}

// RefreshInFlight reports whether a renewal round-trip is outstanding.
func (c *Coordinator) RefreshInFlight() bool {
	return c.inFlight.Load() > 0
}

// Login stores cred as the live session. remember selects the durable tier,
// otherwise the record lives only as long as the process. No network call is
// made.
func (c *Coordinator) Login(ctx context.Context, cred Credential, remember bool) error {
	if err := validateToken(cred.AccessToken); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	cred.Authenticated = true
	cred.Tier = store.TierEphemeral
	if remember {
		cred.Tier = store.TierDurable
	}

	data, err := cred.marshal()
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.tiers.Save(ctx, cred.Tier, c.key, data); err != nil {
		return err
	}

	c.cred = cred
	c.epoch++
	c.rescheduleLocked(ctx)

	c.log.Info(ctx, "logged in", "user", cred.Username, "tier", cred.Tier)
	return nil
}

// Logout ends the session. The remote logout is best effort; local state is
// always cleared. Calling it without a session is a no-op.
func (c *Coordinator) Logout(ctx context.Context) error {
	token := c.AccessToken()
	if token != "" {
		if err := c.remote.Logout(ctx, token); err != nil {
			c.log.Warn(ctx, "remote logout failed", "error", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	if err := c.tiers.Clear(ctx, c.key); err != nil {
		c.log.Error(ctx, "failed to clear stored session", "error", err)
		return err
	}

	if token != "" {
		c.log.Info(ctx, "logged out")
	}
	return nil
}

// Close stops the proactive timer. The coordinator stays usable but no
// longer renews on its own.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelTimerLocked()
}

// resetLocked drops the in-memory credential and the timer.
func (c *Coordinator) resetLocked() {
	c.cred = Credential{}
	c.epoch++
	c.cancelTimerLocked()
}

// persistLocked writes the credential to the tier it already lives in.
func (c *Coordinator) persistLocked(ctx context.Context) error {
	if c.cred.Tier == store.TierNone {
		return nil
	}
	data, err := c.cred.marshal()
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return c.tiers.Save(ctx, c.cred.Tier, c.key, data)
}

// expire ends the session identified by epoch. The redirect fires only if
// that session was still the live, authenticated one.
func (c *Coordinator) expire(ctx context.Context, epoch uint64, cause error) {
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	wasAuthenticated := c.cred.Authenticated
	c.resetLocked()
	err := c.tiers.Clear(ctx, c.key)
	onExpired := c.onExpired
	c.mu.Unlock()

	if err != nil {
		c.log.Error(ctx, "failed to clear stored session", "error", err)
	}
	if !wasAuthenticated {
		return
	}

	c.metrics.SessionsExpired.Inc()
	c.log.Warn(ctx, "session expired", "cause", cause)
	if onExpired != nil {
		onExpired(cause)
	}
}

// terminate ends the session identified by epoch and revokes token on the
// server. The revocation is best effort and runs even when the session has
// already been reset locally.
func (c *Coordinator) terminate(ctx context.Context, epoch uint64, token string, cause error) {
	if token != "" {
		if err := c.remote.Logout(ctx, token); err != nil && !errors.Is(err, context.Canceled) {
			c.log.Debug(ctx, "remote logout failed", "error", err)
		}
	}
	c.expire(ctx, epoch, cause)
}

func (c *Coordinator) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}
