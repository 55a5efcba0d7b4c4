package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/diplomadesk/internal/client/api"
	"github.com/dmitrijs2005/diplomadesk/internal/flagx"
	"github.com/dmitrijs2005/diplomadesk/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Zero values leave the
// current setting alone.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DurablePath    string         `json:"durable_path"`
	RefreshBuffer  timex.Duration `json:"refresh_buffer"`
	RefreshTimeout timex.Duration `json:"refresh_timeout"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
	Paths          api.Paths      `json:"paths"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DurablePath != "" {
		cfg.DurablePath = jc.DurablePath
	}
	if jc.RefreshBuffer.Duration != 0 {
		cfg.RefreshBuffer = jc.RefreshBuffer.Duration
	}
	if jc.RefreshTimeout.Duration != 0 {
		cfg.RefreshTimeout = jc.RefreshTimeout.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	overlayPaths(&cfg.Paths, jc.Paths)
	return nil
}

func overlayPaths(dst *api.Paths, src api.Paths) {
	if src.Login != "" {
		dst.Login = src.Login
	}
	if src.RefreshToken != "" {
		dst.RefreshToken = src.RefreshToken
	}
	if src.Logout != "" {
		dst.Logout = src.Logout
	}
	if src.AccountInfo != "" {
		dst.AccountInfo = src.AccountInfo
	}
}
