package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/msuozzo/aduro/internal/config"
	"github.com/msuozzo/aduro/internal/creds"
	"github.com/msuozzo/aduro/internal/engine"
	"github.com/msuozzo/aduro/internal/kindle"
	"github.com/msuozzo/aduro/internal/library"
	"github.com/msuozzo/aduro/internal/store"
)

// configureLogging routes slog to stderr at a level controlled by the
// verbose flag.
func configureLogging(opts *RootOptions) {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// runtime bundles the opened collaborators a command needs.
type runtime struct {
	cfg     config.Config
	store   *store.Store
	catalog *library.Catalog
}

// openRuntime resolves configuration and opens the store and catalog.
// Callers must Close.
func openRuntime(opts *RootOptions) (*runtime, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	slog.Debug("opening event log", "path", cfg.StorePath)
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open event log", err)
	}

	catalog, err := library.Load(cfg.CatalogPath)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	slog.Debug("catalog loaded", "books", catalog.Len())

	return &runtime{cfg: cfg, store: st, catalog: catalog}, nil
}

// Close releases the store.
func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		slog.Error("error closing event log", "error", err)
	}
}

// manager builds a reconciliation manager over the runtime's collaborators.
func (r *runtime) manager() *engine.Manager {
	return engine.New(r.store, r.source(), r.catalog)
}

// source picks the configured observation source: an on-disk snapshot
// export when set, otherwise the HTTP endpoint, otherwise a source that
// reports unavailable.
func (r *runtime) source() kindle.Source {
	if r.cfg.SnapshotFile != "" {
		return kindle.FileSource{Path: r.cfg.SnapshotFile}
	}
	if r.cfg.SnapshotURL != "" {
		return kindle.NewClient(r.cfg.SnapshotURL, creds.NewManager(r.cfg.CredentialsPath))
	}
	return unavailableSource{}
}

// unavailableSource stands in when no snapshot source is configured.
type unavailableSource struct{}

func (unavailableSource) FetchSnapshot(ctx context.Context) ([]kindle.Observation, error) {
	return nil, fmt.Errorf("%w: no snapshot source configured", kindle.ErrUnavailable)
}
