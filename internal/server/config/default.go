// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr          = "127.0.0.1:3000"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second

	DefaultRedisAddr        = "127.0.0.1:6379"
	DefaultRedisReadTimeout = 30 * time.Second
	DefaultRedisIdleTimeout = 5 * time.Minute

	DefaultCells   = 1000
	DefaultTitle   = "One Million Checkboxes"
	DefaultMessage = "Toggle the checkboxes!"

	DefaultStreamInterval = time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// MaxCells bounds the grid size so a typo cannot allocate gigabytes.
const MaxCells = 100_000_000

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:              DefaultHTTPAddr,
				ReadHeaderTimeout: DefaultReadHeaderTimeout,
				ShutdownTimeout:   DefaultShutdownTimeout,
			},
			Redis: RedisConfig{
				Addr:        DefaultRedisAddr,
				ReadTimeout: DefaultRedisReadTimeout,
				IdleTimeout: DefaultRedisIdleTimeout,
			},
		},
		Grid: GridSection{
			Cells:   DefaultCells,
			Title:   DefaultTitle,
			Message: DefaultMessage,
		},
		Stream: StreamSection{
			Interval: DefaultStreamInterval,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
