package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/hrm/internal/adapters/http/api"
	"github.com/okian/hrm/internal/adapters/http/swagger"
	service "github.com/okian/hrm/internal/app"
	"github.com/okian/hrm/internal/config"
	"github.com/okian/hrm/internal/menu"
	"github.com/okian/hrm/pkg/logger"
	"github.com/okian/hrm/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (.env -> defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// run starts the configured front-ends and blocks until the menu exits,
// the HTTP server fails or ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	// Keep log records off the menu's output stream.
	logOut := io.Writer(os.Stdout)
	if cfg.Menu {
		logOut = os.Stderr
	}
	if err := logger.Init(logger.WithOutput(logOut), logger.WithJSON(cfg.LogJSON)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Named("hrm")

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Configure(metricsOptions(cfg)...)

	svc := service.New(
		service.WithLogger(log.Named("service")),
		service.WithSeedFile(cfg.SeedFile),
		service.WithReportFile(cfg.ReportFile),
		service.WithWorkbookFile(cfg.WorkbookFile),
		service.WithManagerToken(cfg.ManagerToken),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	errCh := make(chan error, 2)
	var srv *http.Server
	if cfg.Addr != "" {
		srv = newHTTPServer(ctx, cfg.Addr, svc, log)
		go func() {
			log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("HTTP server failed: %w", err)
			}
		}()
	}

	// A nil channel never fires when the menu is disabled.
	var menuDone chan error
	if cfg.Menu {
		m, err := menu.New(svc, menu.WithInput(in), menu.WithOutput(out), menu.WithLogger(log.Named("menu")))
		if err != nil {
			return err
		}
		menuDone = make(chan error, 1)
		go func() { menuDone <- m.Run(ctx) }()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutdown signal received")
	case err := <-menuDone:
		runErr = err
	case err := <-errCh:
		runErr = err
	}

	if srv != nil {
		log.Info(ctx, "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "server shutdown failed", logger.Error(err))
		}
		log.Info(ctx, "server stopped")
	}
	return runErr
}

// metricsOptions maps the metrics settings onto collector options.
func metricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithCustomLabels(cfg.MetricsLabels),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
	}
}

// newHandler registers the docs and API routes on a fresh mux.
func newHandler(ctx context.Context, svc *service.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, log.Named("http")).Register(ctx, mux)
	return mux
}

func newHTTPServer(ctx context.Context, addr string, svc *service.Service, log logger.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           newHandler(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
