package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/checkgrid-go/internal/core/service"
	"github.com/yndnr/checkgrid-go/internal/server/httpserver/handler"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// CellService handles grid operations.
	CellService *service.CellService

	// StreamService produces the counter streams.
	StreamService *service.StreamService

	// Page is the static text of the index page.
	Page handler.Page

	// Metrics receives request metrics and serves /metrics (nil = disabled).
	Metrics MetricsProvider

	// Logger for request logging.
	Logger *slog.Logger

	// RateLimit is the per-IP limit for mutating endpoints in
	// requests/second (0 = disabled).
	RateLimit int
	RateBurst int

	// TrustProxy attributes requests to the X-Real-IP / X-Forwarded-For
	// client of a reverse proxy instead of the connection peer.
	TrustProxy bool

	// EnableAudit enables access logging for all requests.
	EnableAudit bool
}

// MetricsProvider records request metrics and exposes them for scraping.
type MetricsProvider interface {
	RequestObserver
	Handler() http.Handler
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := handler.New(cfg.CellService, cfg.StreamService, cfg.Page, logger)

	clientIP := ClientIP(RemoteIP)
	if cfg.TrustProxy {
		clientIP = ForwardedIP
	}

	// Order: Recover -> RequestID -> Audit -> Metrics -> [RateLimit] -> Handler
	common := []Middleware{Recover(logger), RequestID()}
	if cfg.EnableAudit {
		common = append(common, Audit(logger, clientIP))
	}
	if cfg.Metrics != nil {
		common = append(common, Metrics(cfg.Metrics))
	}

	readHandler := Chain(h, common...)

	mutating := append([]Middleware(nil), common...)
	if cfg.RateLimit > 0 {
		mutating = append(mutating, RateLimit(cfg.RateLimit, cfg.RateBurst, clientIP))
	}
	writeHandler := Chain(h, mutating...)

	mux := http.NewServeMux()

	// Probes skip audit and metrics to keep logs readable.
	probeHandler := Chain(h, Recover(logger), RequestID())
	mux.Handle(handler.RouteHealth, probeHandler)
	mux.Handle(handler.RouteReady, probeHandler)

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(logger)))
	}

	// Page endpoints
	mux.Handle(handler.RouteIndex, readHandler)
	mux.Handle(handler.RouteToggle, writeHandler)
	mux.Handle(handler.RouteCounter, readHandler)

	// JSON API
	mux.Handle(handler.RouteCells, readHandler)
	mux.Handle(handler.RouteCell, readHandler)
	mux.Handle(handler.RouteCellToggle, writeHandler)
	mux.Handle(handler.RouteStats, readHandler)

	return mux
}
