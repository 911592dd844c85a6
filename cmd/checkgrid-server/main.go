package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/yndnr/checkgrid-go/internal/core/service"
	"github.com/yndnr/checkgrid-go/internal/infra/buildinfo"
	"github.com/yndnr/checkgrid-go/internal/infra/confloader"
	"github.com/yndnr/checkgrid-go/internal/infra/shutdown"
	"github.com/yndnr/checkgrid-go/internal/server/config"
	"github.com/yndnr/checkgrid-go/internal/server/httpserver"
	"github.com/yndnr/checkgrid-go/internal/server/httpserver/handler"
	"github.com/yndnr/checkgrid-go/internal/server/redisserver"
	"github.com/yndnr/checkgrid-go/internal/storage/memory"
	"github.com/yndnr/checkgrid-go/internal/telemetry/logger"
	"github.com/yndnr/checkgrid-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.showVersion {
		fmt.Printf("checkgrid-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(opts.configFile, opts.overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting checkgrid-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", opts.configFile,
		"cells", cfg.Grid.Cells)

	// Storage and telemetry
	store := memory.NewCellStore(cfg.Grid.Cells)
	registry := metric.NewRegistry()
	registry.MustRegister(metric.NewCollector(store))

	// Services
	cells := service.NewCellService(store,
		service.WithObserver(registry),
		service.WithLogger(log.Slog()))
	streams := service.NewStreamService(cfg.Stream.Interval, registry.SetActiveStreams)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		CellService:   cells,
		StreamService: streams,
		Page: handler.Page{
			Title:   cfg.Grid.Title,
			Message: config.SanitizeMessage(cfg.Grid.Message),
		},
		Metrics:     registry,
		Logger:      log.Slog(),
		RateLimit:   cfg.Server.HTTP.RateLimit,
		RateBurst:   cfg.Server.HTTP.RateBurst,
		TrustProxy:  cfg.Server.HTTP.TrustProxy,
		EnableAudit: true,
	})

	srv := httpserver.New(cfg.Server.HTTP.Addr, router,
		httpserver.WithMaxConnections(cfg.Server.HTTP.MaxConnections),
		httpserver.WithReadHeaderTimeout(cfg.Server.HTTP.ReadHeaderTimeout))

	// Bind before starting so a busy port fails startup.
	ln, err := srv.Listen()
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.HTTP.Addr, err)
	}
	log.Info("Listening on "+ln.Addr().String(), "addr", ln.Addr().String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 2)
	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			serveErr <- err
			cancel()
		}
	}()

	shutdownHandler := shutdown.NewHandler(cfg.Server.HTTP.ShutdownTimeout)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server", "active_streams", streams.Active())
		return srv.Shutdown(ctx)
	})

	if cfg.Server.Redis.Enabled {
		rs := redisserver.New(&redisserver.Config{
			Addr:        cfg.Server.Redis.Addr,
			ReadTimeout: cfg.Server.Redis.ReadTimeout,
			IdleTimeout: cfg.Server.Redis.IdleTimeout,
			RateLimit:   cfg.Server.Redis.RateLimit,
		}, cells, log.Slog())

		rln, err := rs.Listen()
		if err != nil {
			srv.Shutdown(context.Background())
			return fmt.Errorf("listen on %s: %w", cfg.Server.Redis.Addr, err)
		}
		log.Info("RESP server listening", "addr", rln.Addr().String())

		go func() {
			if err := rs.Serve(rln); err != nil {
				log.Error("RESP server error", "error", err)
				serveErr <- err
				cancel()
			}
		}()

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down RESP server")
			return rs.Shutdown(ctx)
		})
	}

	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	default:
	}

	log.Info("server stopped gracefully")
	return nil
}

// options holds the parsed command line.
type options struct {
	configFile  string
	showVersion bool

	// overrides holds configuration keys set by flags given explicitly.
	overrides map[string]any
}

// flagKeys maps override flags to the configuration keys they set.
var flagKeys = map[string]string{
	"addr":      "server.http.addr",
	"cells":     "grid.cells",
	"log-level": "log.level",
}

func parseFlags(args []string) (*options, error) {
	opts := &options{overrides: make(map[string]any)}

	fs := flag.NewFlagSet("checkgrid-server", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "Path to configuration file")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.String("addr", "", "HTTP listen address (overrides server.http.addr)")
	fs.Int("cells", 0, "Number of checkboxes (overrides grid.cells)")
	fs.String("log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Only flags present on the command line override lower sources.
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			opts.overrides[key] = f.Value.(flag.Getter).Get()
		}
	})

	return opts, nil
}

// loadConfig loads configuration from defaults, an optional file, the
// environment and flag overrides, in increasing priority.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{
		confloader.WithKeys(config.Keys()...),
		confloader.WithOverrides(overrides),
	}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
