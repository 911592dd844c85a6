package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"
)

// Server represents the HTTP server.
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	maxConnections int

	// cancel ends the base context of every request once Shutdown starts,
	// so long-lived event streams return instead of holding Shutdown.
	cancel context.CancelFunc
}

// Option configures a Server.
type Option func(*Server)

// WithMaxConnections caps simultaneously accepted connections.
// Further clients wait in the kernel backlog. n <= 0 means unlimited.
func WithMaxConnections(n int) Option {
	return func(s *Server) {
		s.maxConnections = n
	}
}

// WithReadHeaderTimeout bounds the time to read request headers.
//
// There is deliberately no write timeout: /sse-counter responses stay
// open for as long as the client listens.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.httpServer.ReadHeaderTimeout = d
	}
}

// New creates a new HTTP server.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     handler,
			BaseContext: func(net.Listener) context.Context { return baseCtx },
		},
		handler: handler,
		cancel:  cancel,
	}
	s.httpServer.RegisterOnShutdown(cancel)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Listen binds the configured address. Binding separately from Serve lets
// callers fail fast on a busy port and learn the actual address.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, err
	}
	if s.maxConnections > 0 {
		ln = netutil.LimitListener(ln, s.maxConnections)
	}
	return ln, nil
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server. Request contexts are
// cancelled first, which ends open /sse-counter streams.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.cancel()
	return s.httpServer.Shutdown(ctx)
}
