package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/diplomadesk/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows. Other flags in args are
// filtered out with flagx.FilterArgs first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-b", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("diplomadesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DurablePath, "d", cfg.DurablePath, "SQLite file for remembered sessions")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	buffer := fs.Int("b", int(cfg.RefreshBuffer.Seconds()), "renew this many seconds before expiry")
	refreshTimeout := fs.Int("t", int(cfg.RefreshTimeout.Seconds()), "refresh timeout (in seconds)")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags actually given replace durations, so "1500ms" from JSON
	// is not truncated to whole seconds.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "b":
			cfg.RefreshBuffer = time.Duration(*buffer) * time.Second
		case "t":
			cfg.RefreshTimeout = time.Duration(*refreshTimeout) * time.Second
		case "r":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
	return nil
}
