package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pantry-it/backend/internal/api"
	"github.com/pantry-it/backend/internal/infrastructure/config"
	"github.com/pantry-it/backend/internal/maintenance"
	"github.com/pantry-it/backend/internal/service"
	"github.com/pantry-it/backend/internal/store"

	_ "github.com/pantry-it/backend/docs" // swagger docs
)

var version = "dev"

// @title           Pantry API
// @version         1.0
// @description     Household pantry inventory: categories, items and their fill level history.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	inventory, err := service.NewInventoryService(context.Background(), db, logger)
	if err != nil {
		logger.Error("failed to initialize inventory", "error", err)
		db.Close()
		os.Exit(1)
	}
	handler := api.NewHandler(inventory, logger, version)

	var scheduler *maintenance.Scheduler
	if cfg.OptimizeSchedule != "" {
		scheduler, err = maintenance.NewScheduler(cfg.OptimizeSchedule, inventory, logger)
		if err != nil {
			logger.Error("failed to schedule maintenance", "error", err)
			db.Close()
			os.Exit(1)
		}
		scheduler.Start()
	}

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.ServerAddress)
	if err != nil {
		logger.Error("server failed to start", "error", err)
		db.Close()
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting server", "address", ln.Addr().String(), "database", cfg.DBPath, "version", version)
	err = serve(server, ln, sigChan, cfg.ShutdownTimeout, logger, func(ctx context.Context) {
		if scheduler != nil {
			scheduler.Stop(ctx)
		}
	})
	if cerr := db.Close(); cerr != nil {
		logger.Error("failed to close database", "error", cerr)
	}
	if err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// serve runs srv on ln until stop fires, then shuts it down. It returns only
// after in-flight requests have drained or timeout has passed.
func serve(srv *http.Server, ln net.Listener, stop <-chan os.Signal, timeout time.Duration, logger *slog.Logger, beforeShutdown func(context.Context)) error {
	shutdownErr := make(chan error, 1)
	go func() {
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		logger.Info("shutting down server")
		if beforeShutdown != nil {
			beforeShutdown(ctx)
		}
		shutdownErr <- srv.Shutdown(ctx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
