// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for checkgrid-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Grid   GridSection   `koanf:"grid"`
	Stream StreamSection `koanf:"stream"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP  HTTPConfig  `koanf:"http"`
	Redis RedisConfig `koanf:"redis"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr string `koanf:"addr"`

	// MaxConnections caps simultaneously accepted connections (0 = unlimited).
	MaxConnections int `koanf:"max_connections"`

	// RateLimit is the per-IP request rate for mutating endpoints
	// in requests/second (0 = disabled). RateBurst defaults to RateLimit.
	RateLimit int `koanf:"rate_limit"`
	RateBurst int `koanf:"rate_burst"`

	// TrustProxy attributes requests to the client named by X-Real-IP or
	// X-Forwarded-For. Enable only behind a reverse proxy that sets them.
	TrustProxy bool `koanf:"trust_proxy"`

	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// RedisConfig configures the optional RESP port.
type RedisConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`

	// ReadTimeout bounds reading one command once its first byte arrived.
	ReadTimeout time.Duration `koanf:"read_timeout"`
	// IdleTimeout closes connections that send nothing.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// RateLimit is the per-IP command rate (0 = disabled).
	RateLimit int `koanf:"rate_limit"`
}

// GridSection configures the shared checkbox grid.
type GridSection struct {
	// Cells is the number of checkboxes; fixed for the process lifetime.
	Cells int `koanf:"cells"`

	Title string `koanf:"title"`

	// Message may contain inline HTML; it is sanitized before rendering.
	Message string `koanf:"message"`
}

// StreamSection configures the /sse-counter stream.
type StreamSection struct {
	Interval time.Duration `koanf:"interval"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Keys lists every configuration key. The loader uses it to map
// environment variables onto keys that contain underscores, e.g.
// CHECKGRID_SERVER_HTTP_MAX_CONNECTIONS -> server.http.max_connections.
func Keys() []string {
	return []string{
		"server.http.addr",
		"server.http.max_connections",
		"server.http.rate_limit",
		"server.http.rate_burst",
		"server.http.trust_proxy",
		"server.http.read_header_timeout",
		"server.http.shutdown_timeout",
		"server.redis.enabled",
		"server.redis.addr",
		"server.redis.read_timeout",
		"server.redis.idle_timeout",
		"server.redis.rate_limit",
		"grid.cells",
		"grid.title",
		"grid.message",
		"stream.interval",
		"log.level",
		"log.format",
	}
}
