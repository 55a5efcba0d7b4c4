package transport

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

// maxDrain bounds how much of a 401 body is read before the connection is
// given back.
const maxDrain = 4 << 10

// RoundTripper is an http.RoundTripper that authorizes requests with the
// TokenSource's token and retries once after renewing on a 401.
type RoundTripper struct {
	next   http.RoundTripper
	source TokenSource
	opts   *options
}

// New wraps next. A nil next means http.DefaultTransport.
func New(next http.RoundTripper, source TokenSource, opts ...Option) *RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RoundTripper{next: next, source: source, opts: newOptions(opts)}
}

func (t *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	out := req.Clone(ctx)
	if out.Header.Get(HeaderRequestID) == "" {
		out.Header.Set(HeaderRequestID, uuid.NewString())
	}
	if out.Header.Get(HeaderAuthorization) == "" {
		if tok := t.source.AccessToken(); tok != "" {
			out.Header.Set(HeaderAuthorization, bearer(tok))
		}
	}

	resp, err := t.next.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if isRetry(ctx) || t.opts.skip(req.URL.Path) || !replayable(req) {
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	resp.Body.Close()

	log := t.opts.log.With("request_id", out.Header.Get(HeaderRequestID), "path", req.URL.Path)
	log.Debug(ctx, "unauthorized, renewing session")

	tok, err := t.source.Refresh(ctx)
	if err != nil {
		log.Debug(ctx, "renewal failed", "error", err)
		return nil, err
	}

	retry := req.Clone(markRetry(ctx))
	retry.Header.Set(HeaderRequestID, out.Header.Get(HeaderRequestID))
	retry.Header.Set(HeaderAuthorization, bearer(tok))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}

	log.Debug(ctx, "retrying with renewed token", "token", logging.Redact(tok))
	return t.next.RoundTrip(retry)
}

// replayable reports whether req's body can be sent a second time.
func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}
