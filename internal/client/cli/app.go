package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/diplomadesk/internal/client/api"
	"github.com/dmitrijs2005/diplomadesk/internal/client/config"
	"github.com/dmitrijs2005/diplomadesk/internal/client/session"
	"github.com/dmitrijs2005/diplomadesk/internal/client/store"
	"github.com/dmitrijs2005/diplomadesk/internal/client/transport"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

// sessionManager is the part of *session.Coordinator the App uses.
type sessionManager interface {
	Bootstrap(ctx context.Context) error
	Login(ctx context.Context, cred session.Credential, remember bool) error
	Logout(ctx context.Context) error
	Credential() session.Credential
	IsLoading() bool
	Close()
}

// backend is the part of *api.Client the App uses.
type backend interface {
	Login(ctx context.Context, identifier, secret string) (string, error)
	AccountInfo(ctx context.Context, accessToken string) (session.Profile, error)
	Get(ctx context.Context, path string, out any) error
}

type App struct {
	config  *config.Config
	log     logging.Logger
	session sessionManager
	api     backend
	metrics prometheus.Gatherer

	reader *bufio.Reader
	out    io.Writer

	expired atomic.Bool
	closers []io.Closer
}

// NewApp opens the durable store and builds the client stack described by
// cfg.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := store.OpenDurable(ctx, cfg.DurablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.DurablePath, err)
	}

	a, err := newApp(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, log logging.Logger, db *sql.DB) (*App, error) {
	durable := store.NewSQLiteStore(db)
	tiers := store.NewTiers(durable, store.NewMemoryStore())

	jar, err := newPersistentJar(durable, log)
	if err != nil {
		return nil, err
	}
	hc := &http.Client{Jar: jar, Timeout: cfg.RequestTimeout}
	apiClient := api.New(cfg.ServerURL, hc, api.WithPaths(cfg.Paths), api.WithLogger(log))
	if err := jar.restore(cfg.ServerURL); err != nil {
		log.Warn(context.Background(), "failed to restore cookies", "error", err)
	}

	reg := prometheus.NewRegistry()
	a := &App{
		config:  cfg,
		log:     log,
		api:     apiClient,
		metrics: reg,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []io.Closer{db},
	}

	coord := session.New(apiClient, tiers,
		session.WithLogger(log),
		session.WithMetrics(session.NewMetrics(reg)),
		session.WithRefreshBuffer(cfg.RefreshBuffer),
		session.WithRefreshTimeout(cfg.RefreshTimeout),
		session.WithOnExpired(a.onExpired),
	)
	a.session = coord

	hc.Transport = transport.New(http.DefaultTransport, coord,
		transport.WithAuthPaths(apiClient.Paths().Auth()...),
		transport.WithLogger(log),
	)
	return a, nil
}

// Run restores any remembered session and serves the REPL until ctx ends or
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	a.session.Close()
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Credential().Authenticated
}

// onExpired is the session's redirect: the REPL picks it up before the next
// prompt.
func (a *App) onExpired(err error) {
	a.log.Info(context.Background(), "session ended", "cause", err)
	a.expired.Store(true)
}

// sessionExpired reports and clears a pending redirect.
func (a *App) sessionExpired() bool {
	return a.expired.Swap(false)
}

func (a *App) getStatus() string {
	cred := a.session.Credential()
	if !cred.Authenticated {
		return ""
	}
	name := cred.Username
	if name == "" {
		name = cred.ID
	}
	return fmt.Sprintf("(%s %s)", name, cred.Tier)
}
