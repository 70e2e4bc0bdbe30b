package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/todolist/internal/config"
	"github.com/mmynk/todolist/internal/httpapi"
	"github.com/mmynk/todolist/internal/metrics"
	"github.com/mmynk/todolist/internal/middleware"
	"github.com/mmynk/todolist/internal/service"
	"github.com/mmynk/todolist/internal/storage"
	"github.com/mmynk/todolist/internal/storage/memory"
	"github.com/mmynk/todolist/internal/storage/postgres"
	"github.com/mmynk/todolist/internal/storage/sqlite"
	"github.com/mmynk/todolist/internal/todos"
	"github.com/mmynk/todolist/pkg/logging"
	"github.com/mmynk/todolist/pkg/todoconnect"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Until the config is loaded, log at LOG_LEVEL so config errors are readable.
	logging.Setup()

	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	logger := logging.SetupWith(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Store)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := todos.New(store, todos.WithLogger(logger), todos.WithMetrics(m))

	mux := http.NewServeMux()

	api, err := httpapi.New(svc)
	if err != nil {
		return fmt.Errorf("failed to build REST handler: %w", err)
	}
	api.Register(mux)

	// Register Connect service
	todoPath, todoHandler := todoconnect.NewTodoServiceHandler(
		service.NewTodoService(svc),
		connect.WithInterceptors(middleware.LoggingInterceptor(logger)),
	)
	mux.Handle(todoPath, todoHandler)

	mux.Handle("GET "+cfg.MetricsPath, metrics.Handler(reg))

	handler := middleware.RequestID(
		middleware.Logging(
			middleware.CORS(cfg.CORSOrigin,
				middleware.Metrics(m, mux))))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", cfg.Addr, "store", cfg.Store, "metrics", cfg.MetricsPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return postgres.New(ctx, cfg.PostgresDSN)
	case config.StoreMemory:
		return memory.New(), nil
	default:
		return sqlite.New(cfg.DBPath)
	}
}
