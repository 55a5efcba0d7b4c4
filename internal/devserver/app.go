// Package devserver runs the development backend: the REST auth and admin
// API over gin, plus a gRPC health endpoint behind the same tokens.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/diplomadesk/internal/devserver/config"
	gs "github.com/dmitrijs2005/diplomadesk/internal/devserver/grpc"
	"github.com/dmitrijs2005/diplomadesk/internal/devserver/handler"
	"github.com/dmitrijs2005/diplomadesk/internal/devserver/users"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	registry    *prometheus.Registry
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, opts ...users.Option) (*App, error) {
	us := users.NewService(users.NewMemoryRepository(), users.NewMemoryRefreshTokenRepository(), c, opts...)

	admin, err := us.EnsureAdmin(ctx, c.AdminUsername, c.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("admin seed error: %w", err)
	}
	logger.Info(ctx, "admin account ready", "username", admin.UserName)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &App{config: c, logger: logger, userService: us, registry: reg}, nil
}

// Handler returns the HTTP API.
func (app *App) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	return handler.NewRouter(app.userService, app.logger.With("module", "http_server"), app.registry)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc, lis net.Listener) {
	srv := &http.Server{Handler: app.Handler(), ReadHeaderTimeout: 5 * time.Second}

	app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
		}
		cancelFunc()
		return
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		app.logger.Error(ctx, "HTTP shutdown failed", "error", err)
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc, lis net.Listener) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService)
	if err := s.Serve(ctx, lis); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both endpoints until ctx is done or a signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	httpLis, err := net.Listen("tcp", app.config.EndpointAddrHTTP)
	if err != nil {
		return fmt.Errorf("http listen error: %w", err)
	}
	grpcLis, err := net.Listen("tcp", app.config.EndpointAddrGRPC)
	if err != nil {
		httpLis.Close()
		return fmt.Errorf("grpc listen error: %w", err)
	}

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc, httpLis)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc, grpcLis)
	}()

	wg.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return nil
}
