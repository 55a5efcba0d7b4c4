package transport

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)

// TokenSource supplies the current access token and renews it on demand.
type TokenSource interface {
	AccessToken() string
	Refresh(ctx context.Context) (string, error)
}

type options struct {
	log       logging.Logger
	skipPaths []string
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithAuthPaths lists HTTP paths or gRPC full method names whose auth
// failures are returned as-is. The login, logout and refresh endpoints belong
// here: renewing on their failure would recurse.
//
// Absolute URLs are reduced to their path. A path also matches any request
// path that ends with it, so endpoints served under a base URL prefix are
// still recognised.
func WithAuthPaths(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			if u, err := url.Parse(p); err == nil && u.IsAbs() {
				p = u.Path
			}
			if p == "" || p == "/" {
				continue
			}
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			o.skipPaths = append(o.skipPaths, p)
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: logging.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) skip(path string) bool {
	for _, p := range o.skipPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}

type retryKey struct{}

func markRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, retryKey{}, true)
}

func isRetry(ctx context.Context) bool {
	v, _ := ctx.Value(retryKey{}).(bool)
	return v
}

func bearer(token string) string {
	return "Bearer " + token
}
