package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ryderdavid/agentsmd/internal/agents"
	"github.com/ryderdavid/agentsmd/internal/catalog"
	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. The catalog snapshot it holds is immutable; Reload builds a
// replacement snapshot rather than mutating in place.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *agents.Registry
	snapshot *catalog.Snapshot

	httpServer *http.Server
}

// New constructs a fully initialized App: logger, agent registry (builtins
// plus the optional YAML overlay), and the initial catalog snapshot.
func New(ctx context.Context, outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	registry := agents.New()
	if cfg.AgentsFile != "" {
		if err := registry.LoadFile(ctx, cfg.AgentsFile); err != nil {
			return nil, err
		}
	}
	if err := registry.Validate(ctx); err != nil {
		return nil, err
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: registry,
	}

	if err := a.Reload(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Context returns a context carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Registry returns the agent registry.
func (a *App) Registry() *agents.Registry {
	return a.registry
}

// Snapshot returns the current catalog snapshot. Engine calls should grab
// the snapshot once and pass it through, so one call never observes two
// catalog states.
func (a *App) Snapshot() *catalog.Snapshot {
	return a.snapshot
}

// Reload loads the pack manifests and replaces the catalog snapshot.
func (a *App) Reload(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	model, err := a.loader.Load(ctx, a.config.PacksPath)
	if err != nil {
		return fmt.Errorf("failed to load pack manifests: %w", err)
	}

	a.snapshot = catalog.NewSnapshot(ctx, model, a.registry.Ids())
	return nil
}
