package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	sessionExpired() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Get(ctx context.Context, path string) error
	Stats(ctx context.Context) error
}

// Root restores a remembered session and runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("diplomadesk admin console (type 'help' for commands)")

	if err := a.session.Bootstrap(ctx); err != nil {
		a.log.Debug(ctx, "bootstrap failed", "error", err)
	}
	if cred := a.session.Credential(); cred.Authenticated {
		printlnFn("Welcome back,", displayName(cred.Profile))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// runREPL reads commands line by line and dispatches them to a. Command
// errors are reported by the handlers themselves. It returns on EOF, on
// "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		if a.sessionExpired() {
			printlnFn("Your session has expired. Please log in again.")
			_ = a.Login(ctx)
		}

		printlnFn(fmt.Sprintf("dd%s> ", prefixSpace(statusFn())))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, status, get <path>, stats, logout, exit")
			} else {
				printlnFn("Available commands: login, status, stats, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "status":
			_ = a.Status(ctx)

		case "get":
			if len(args) != 1 {
				printlnFn("Usage: get <path>")
				continue
			}
			_ = a.Get(ctx, args[0])

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
