package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/diplomadesk/internal/client/session"
	"github.com/dmitrijs2005/diplomadesk/internal/logging"
)

// ---- fake session ----

type fakeSession struct {
	cred     session.Credential
	loading  bool
	remember bool

	loginErr     error
	logoutErr    error
	bootstrapErr error
	bootCred     session.Credential

	logins, logouts, bootstraps, closes int
}

func (f *fakeSession) Bootstrap(context.Context) error {
	f.bootstraps++
	if f.bootstrapErr == nil {
		f.cred = f.bootCred
	}
	return f.bootstrapErr
}

func (f *fakeSession) Login(_ context.Context, cred session.Credential, remember bool) error {
	f.logins++
	if f.loginErr != nil {
		return f.loginErr
	}
	cred.Authenticated = true
	f.cred, f.remember = cred, remember
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	f.cred = session.Credential{}
	return f.logoutErr
}

func (f *fakeSession) Credential() session.Credential { return f.cred }
func (f *fakeSession) IsLoading() bool                { return f.loading }
func (f *fakeSession) Close()                         { f.closes++ }

// ---- fake backend ----

type fakeBackend struct {
	token    string
	loginErr error
	lastID   string
	lastPW   string

	profile    session.Profile
	accountErr error

	getData any
	getErr  error
	gets    []string
}

func (f *fakeBackend) Login(_ context.Context, identifier, secret string) (string, error) {
	f.lastID, f.lastPW = identifier, secret
	return f.token, f.loginErr
}

func (f *fakeBackend) AccountInfo(context.Context, string) (session.Profile, error) {
	return f.profile, f.accountErr
}

func (f *fakeBackend) Get(_ context.Context, path string, out any) error {
	f.gets = append(f.gets, path)
	if f.getErr != nil {
		return f.getErr
	}
	if p, ok := out.(*any); ok {
		*p = f.getData
	}
	return nil
}

// ---- helpers ----

func newTestApp(s *fakeSession, b *fakeBackend) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		log:     logging.Nop(),
		session: s,
		api:     b,
		metrics: prometheus.NewRegistry(),
		reader:  bufio.NewReader(&bytes.Buffer{}),
		out:     &out,
	}, &out
}

func stubInputs(t *testing.T, identifier, password string, remember bool) {
	t.Helper()
	origST, origGP, origYN := getSimpleText, getPassword, getYesNo
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return identifier, nil }
	getPassword = func(io.Writer) ([]byte, error) { return []byte(password), nil }
	getYesNo = func(*bufio.Reader, string, io.Writer) (bool, error) { return remember, nil }
	t.Cleanup(func() {
		getSimpleText, getPassword, getYesNo = origST, origGP, origYN
	})
}
