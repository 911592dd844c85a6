package redisserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/checkgrid-go/internal/core/service"
	"github.com/yndnr/checkgrid-go/pkg/cmap"
)

// Config holds the RESP server configuration.
type Config struct {
	Addr string
	// ReadTimeout bounds reading one command after its first byte (default: 30s).
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply (default: 30s).
	WriteTimeout time.Duration
	// IdleTimeout closes connections that send nothing (default: 5m).
	IdleTimeout time.Duration
	// RateLimit is the per-IP grid command rate (0 = disabled).
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
	}
}

// Server is a RESP2 server for the grid.
type Server struct {
	cfg     Config
	handler *CommandHandler
	logger  *slog.Logger

	mu      sync.Mutex
	ln      net.Listener
	closing atomic.Bool
	conns   *cmap.Map[net.Conn]
	wg      sync.WaitGroup
}

// New creates a RESP server backed by cells. Zero timeouts in cfg take
// the DefaultConfig values.
func New(cfg *Config, cells *service.CellService, logger *slog.Logger) *Server {
	c := *DefaultConfig()
	if cfg != nil {
		c.Addr = cfg.Addr
		c.RateLimit = cfg.RateLimit
		if cfg.ReadTimeout > 0 {
			c.ReadTimeout = cfg.ReadTimeout
		}
		if cfg.WriteTimeout > 0 {
			c.WriteTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.IdleTimeout = cfg.IdleTimeout
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:     c,
		handler: NewCommandHandler(cells, c.RateLimit, logger),
		logger:  logger,
		conns:   cmap.New[net.Conn](),
	}
}

// Listen binds the configured address.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.cfg.Addr)
}

// Serve accepts connections on ln until Shutdown. It returns nil after
// Shutdown and the accept error otherwise.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	for {
		c, err := ln.Accept()
		if err != nil {
			if s.closing.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		// Shutdown sets closing under mu, so no connection is tracked or
		// added to wg once it has started waiting.
		key := c.RemoteAddr().String()
		s.mu.Lock()
		if s.closing.Load() {
			s.mu.Unlock()
			c.Close()
			continue
		}
		s.conns.Set(key, c)
		s.wg.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.wg.Done()
			defer s.conns.Delete(key)
			s.serveConn(c)
		}()
	}
}

// Shutdown stops accepting, closes every open connection and waits for
// their goroutines or ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.mu.Lock()
	s.closing.Store(true)
	if s.ln != nil {
		err = s.ln.Close()
	}
	s.mu.Unlock()

	s.conns.Range(func(_ string, c net.Conn) bool {
		c.Close()
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) serveConn(c net.Conn) {
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remote := c.RemoteAddr().String()
	clientIP, _, err := net.SplitHostPort(remote)
	if err != nil {
		clientIP = remote
	}

	br := bufio.NewReader(c)
	w := NewWriter(c)

	for {
		// Idle connections may wait up to IdleTimeout for a command.
		if err := c.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
			return
		}
		if _, err := br.Peek(1); err != nil {
			s.logReadError(remote, err)
			return
		}

		// Once a command starts it must arrive within ReadTimeout.
		if err := c.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			return
		}
		args, err := ReadCommand(br)
		if err != nil {
			if errors.Is(err, ErrProtocol) || errors.Is(err, ErrLimitExceeded) {
				s.logger.Warn("resp protocol error", "remote", remote, "error", err)
				c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
				w.Error("ERR protocol error: " + err.Error())
				w.Flush()
			} else {
				s.logReadError(remote, err)
			}
			return
		}

		quit := false
		if len(args) == 0 {
			w.Error("ERR no command")
		} else {
			quit = s.handler.Handle(ctx, w, clientIP, args)
		}

		if err := c.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return
		}
		if err := w.Flush(); err != nil || quit {
			return
		}
	}
}

func (s *Server) logReadError(remote string, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, io.EOF), s.closing.Load():
	case errors.As(err, &netErr) && netErr.Timeout():
		s.logger.Debug("connection timed out", "remote", remote)
	default:
		s.logger.Debug("connection read error", "remote", remote, "error", err)
	}
}
