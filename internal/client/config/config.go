package config

import (
	"time"

	"github.com/dmitrijs2005/diplomadesk/internal/client/api"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "DIPLOMADESK_"

// Config holds runtime settings for the diplomadesk CLI.
type Config struct {
	ServerURL      string
	DurablePath    string
	RefreshBuffer  time.Duration
	RefreshTimeout time.Duration
	RequestTimeout time.Duration
	LogLevel       string
	Paths          api.Paths
}

// LoadDefaults populates c with defaults suitable for a local dev backend.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DurablePath = "diplomadesk.db"
	c.RefreshBuffer = 5 * time.Minute
	c.RefreshTimeout = 30 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "warn"
	c.Paths = api.DefaultPaths()
}

// LoadConfig applies defaults, then the environment, the JSON file and the
// flags found in args (normally os.Args[1:]). Later sources win.
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
