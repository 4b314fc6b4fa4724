package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pantry-it/backend/internal/client"
	"github.com/pantry-it/backend/internal/infrastructure/config"
	"github.com/pantry-it/backend/internal/mcp"
	"github.com/pantry-it/backend/internal/presentation"
	"github.com/pantry-it/backend/internal/service"
	"github.com/pantry-it/backend/internal/store"
)

// backend is what a command needs from either the local service or the
// HTTP client.
type backend interface {
	presentation.Gateway
	mcp.Inventory
	Export(ctx context.Context) (*service.Snapshot, error)
	Import(ctx context.Context, snap *service.Snapshot) (service.ImportResult, error)
}

var (
	_ backend = (*service.InventoryService)(nil)
	_ backend = (*client.Client)(nil)
)

var errRemoteUnsupported = errors.New("this command needs direct database access; drop --api")

// env is the per-command wiring: the gateway, the presentation app on top of
// it and, when running locally, the service itself.
type env struct {
	backend backend
	app     *presentation.App
	local   *service.InventoryService
	logger  *slog.Logger
	close   func() error
}

func (o *rootOptions) open(cmd *cobra.Command) (*env, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	apiURL := firstNonEmpty(o.apiURL, cfg.APIURL)
	if apiURL != "" {
		c := client.New(apiURL)
		logger.Debug("using remote gateway", "url", apiURL)
		return &env{
			backend: c,
			app:     presentation.NewApp(c, cfg.CacheTTL),
			logger:  logger,
			close:   func() error { return nil },
		}, nil
	}

	dbPath := firstNonEmpty(o.dbPath, cfg.DBPath)
	db, err := store.NewSQLite(dbPath)
	if err != nil {
		return nil, &service.StorageError{Op: "open database", Err: err}
	}
	svc, err := service.NewInventoryService(cmd.Context(), db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("using local database", "path", dbPath)
	return &env{
		backend: svc,
		app:     presentation.NewApp(svc, cfg.CacheTTL),
		local:   svc,
		logger:  logger,
		close:   db.Close,
	}, nil
}

// run opens the environment, calls fn and closes it again.
func (o *rootOptions) run(cmd *cobra.Command, fn func(*env) error) error {
	e, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.close(); cerr != nil {
			e.logger.Warn("failed to close database", "error", cerr)
		}
	}()
	return fn(e)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
