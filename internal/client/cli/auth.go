package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diplomadesk/internal/client/api"
	"github.com/dmitrijs2005/diplomadesk/internal/client/session"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYesNo      = GetYesNo
)

// Login prompts for an identifier, a password and "remember me", signs in and
// hands the credential to the session.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	remember, err := getYesNo(a.reader, "Remember me on this computer?", a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, identifier, string(password))
	if err != nil {
		var re *api.ResultError
		if errors.As(err, &re) {
			fmt.Fprintln(a.out, "Login failed:", re.Message)
		} else {
			fmt.Fprintln(a.out, "Login failed:", err)
		}
		return err
	}

	profile, err := a.api.AccountInfo(ctx, token)
	if err != nil {
		a.log.Warn(ctx, "account info unavailable after login", "error", err)
		profile = session.Profile{Username: identifier}
	}

	if err := a.session.Login(ctx, session.Credential{AccessToken: token, Profile: profile}, remember); err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	a.expired.Store(false)
	fmt.Fprintf(a.out, "Logged in as %s\n", displayName(profile))
	return nil
}

// Logout ends the session locally and, best effort, on the server.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logged out, but the stored session could not be cleared:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func displayName(p session.Profile) string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Username != "":
		return p.Username
	default:
		return p.ID
	}
}
