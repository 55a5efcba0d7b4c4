// Package config loads runtime configuration for the diplomadesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-e, default ./.env) and the environment, both using the
//     DIPLOMADESK_ prefix.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend
//	-d string   path of the SQLite file backing "remember me"
//	-b int      renew this many seconds before the access token expires
//	-t int      refresh request timeout (seconds)
//	-r int      per-request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so "5m" and integer nanoseconds both work.
// Endpoint paths can only be changed here:
//
//	{
//	  "server_url": "https://registry.example.edu",
//	  "durable_path": "/var/lib/diplomadesk/session.db",
//	  "refresh_buffer": "5m",
//	  "refresh_timeout": "30s",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "paths": {"login": "/api/auth/login"}
//	}
//
// # Environment
//
//	DIPLOMADESK_SERVER_URL, DIPLOMADESK_DURABLE_PATH, DIPLOMADESK_REFRESH_BUFFER,
//	DIPLOMADESK_REFRESH_TIMEOUT, DIPLOMADESK_REQUEST_TIMEOUT, DIPLOMADESK_LOG_LEVEL
//
// Bare integers in duration variables are seconds.
package config
