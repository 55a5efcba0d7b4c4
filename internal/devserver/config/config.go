// Package config handles configuration for the development backend,
// including defaults, the environment, a JSON overlay and command-line flags.
package config

import "time"

// EnvPrefix prefixes every environment variable the dev backend reads.
const EnvPrefix = "DIPLOMADESK_DEV_"

// Config holds runtime settings for the development backend.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses for the REST API and
//     the gRPC health endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default
//     outside a dev box.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - AdminUsername / AdminPassword: the account seeded at startup.
type Config struct {
	EndpointAddrHTTP             string
	EndpointAddrGRPC             string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	AdminUsername                string
	AdminPassword                string
	LogLevel                     string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 10 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.AdminUsername = "admin"
	c.AdminPassword = "admin"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying the
// environment, an optional JSON file and finally the flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
