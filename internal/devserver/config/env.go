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

	v.String("HTTP_ADDR", &cfg.EndpointAddrHTTP)
	v.String("GRPC_ADDR", &cfg.EndpointAddrGRPC)
	v.String("SECRET_KEY", &cfg.SecretKey)
	v.String("ADMIN_USERNAME", &cfg.AdminUsername)
	v.String("ADMIN_PASSWORD", &cfg.AdminPassword)
	v.String("LOG_LEVEL", &cfg.LogLevel)

	if err := v.Duration("ACCESS_TOKEN_TTL", time.Minute, &cfg.AccessTokenValidityDuration); err != nil {
		return err
	}
	return v.Duration("REFRESH_TOKEN_TTL", time.Minute, &cfg.RefreshTokenValidityDuration)
}
