// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/yndnr/checkgrid-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyGrid(&cfg.Grid); err != nil {
		return err
	}
	if cfg.Stream.Interval <= 0 {
		return errors.New("stream.interval must be positive")
	}
	if !logger.ValidFormat(cfg.Log.Format) {
		return fmt.Errorf("log.format %q is not one of pretty, json, cloud", cfg.Log.Format)
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("server.http.addr: %w", err)
	}
	if cfg.HTTP.MaxConnections < 0 {
		return errors.New("server.http.max_connections must not be negative")
	}
	if cfg.HTTP.RateLimit < 0 || cfg.HTTP.RateBurst < 0 {
		return errors.New("server.http.rate_limit and rate_burst must not be negative")
	}

	if !cfg.Redis.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Redis.Addr); err != nil {
		return fmt.Errorf("server.redis.addr: %w", err)
	}
	if cfg.Redis.Addr == cfg.HTTP.Addr {
		return errors.New("server.redis.addr must differ from server.http.addr")
	}
	if cfg.Redis.RateLimit < 0 {
		return errors.New("server.redis.rate_limit must not be negative")
	}
	return nil
}

func verifyGrid(cfg *GridSection) error {
	if cfg.Cells <= 0 {
		return errors.New("grid.cells must be positive")
	}
	if cfg.Cells > MaxCells {
		return fmt.Errorf("grid.cells must be at most %d", MaxCells)
	}
	return nil
}
