package config

import (
	"time"

	"github.com/dmitrijs2005/diplomadesk/internal/envx"
)

func parseEnv(cfg *Config, args []string) error {
	v, err := envx.Load(args, EnvPrefix)
	if err != nil {
		return err
	}

	v.String("SERVER_URL", &cfg.ServerURL)
	v.String("DURABLE_PATH", &cfg.DurablePath)
	v.String("LOG_LEVEL", &cfg.LogLevel)

	for key, dst := range map[string]*time.Duration{
		"REFRESH_BUFFER":  &cfg.RefreshBuffer,
		"REFRESH_TIMEOUT": &cfg.RefreshTimeout,
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
	} {
		if err := v.Duration(key, time.Second, dst); err != nil {
			return err
		}
	}
	return nil
}
