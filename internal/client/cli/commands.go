package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/diplomadesk/internal/client/api"
	"github.com/dmitrijs2005/diplomadesk/internal/client/session"
)

// WhoAmI prints the signed-in account.
func (a *App) WhoAmI(ctx context.Context) error {
	cred := a.session.Credential()
	if !cred.Authenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "id:           %s\n", cred.ID)
	fmt.Fprintf(a.out, "username:     %s\n", cred.Username)
	fmt.Fprintf(a.out, "display name: %s\n", cred.DisplayName)
	fmt.Fprintf(a.out, "role:         %s\n", cred.Role)
	if cred.Avatar != "" {
		fmt.Fprintf(a.out, "avatar:       %s\n", cred.Avatar)
	}
	return nil
}

// Status prints the session state and when the access token expires.
func (a *App) Status(ctx context.Context) error {
	cred := a.session.Credential()
	fmt.Fprintf(a.out, "authenticated: %t\n", cred.Authenticated)
	fmt.Fprintf(a.out, "loading:       %t\n", a.session.IsLoading())
	fmt.Fprintf(a.out, "storage:       %s\n", cred.Tier)

	if cred.AccessToken == "" {
		return nil
	}
	exp, err := session.DecodeExpiry(cred.AccessToken)
	if err != nil {
		fmt.Fprintf(a.out, "expires:       unknown (%v)\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "expires:       %s (in %s)\n", exp.Local().Format(time.RFC3339), time.Until(exp).Round(time.Second))
	return nil
}

// Get fetches an admin resource and pretty-prints its data.
func (a *App) Get(ctx context.Context, path string) error {
	var out any
	if err := a.api.Get(ctx, path, &out); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionExpired):
			fmt.Fprintln(a.out, "Your session has expired.")
		case errors.Is(err, api.ErrUnauthorized):
			fmt.Fprintln(a.out, "Not authorized. Log in first.")
		case errors.Is(err, api.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unavailable:", err)
		default:
			fmt.Fprintln(a.out, "Request failed:", err)
		}
		return err
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

// Stats prints the session metrics, one sample per line.
func (a *App) Stats(ctx context.Context) error {
	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, f := range families {
		for _, m := range f.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := f.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v = m.GetGauge().GetValue()
			default:
				continue
			}
			lines = append(lines, fmt.Sprintf("%-60s %g", name, v))
		}
	}

	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	return nil
}
