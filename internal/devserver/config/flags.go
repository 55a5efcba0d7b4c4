package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/diplomadesk/internal/flagx"
)

// parseFlags populates cfg from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-u string   seeded admin username
//	-p string   seeded admin password
//	-l string   log level
//
// Duration flags replace the current value only when given.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-s", "-t", "-r", "-u", "-p", "-l"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run the HTTP API")
	fs.StringVar(&cfg.EndpointAddrGRPC, "g", cfg.EndpointAddrGRPC, "address and port to run the gRPC endpoint")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.StringVar(&cfg.AdminUsername, "u", cfg.AdminUsername, "admin username")
	fs.StringVar(&cfg.AdminPassword, "p", cfg.AdminPassword, "admin password")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	accessTTL := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTTL := fs.Int("r", int(cfg.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.AccessTokenValidityDuration = time.Duration(*accessTTL) * time.Minute
		case "r":
			cfg.RefreshTokenValidityDuration = time.Duration(*refreshTTL) * time.Minute
		}
	})
	return nil
}
