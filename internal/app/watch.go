package app

import (
	"context"
	"time"

	"github.com/ryderdavid/agentsmd/internal/catalog"
)

// Watch runs fn once immediately, then reloads the catalog and runs fn
// again after every settled burst of changes under the packs path, until
// the context is cancelled. Errors from fn are logged, not fatal: a watch
// session should survive a transiently broken catalog.
func (a *App) Watch(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx = a.Context(ctx)

	watcher, err := catalog.NewWatcher(a.config.PacksPath, 250*time.Millisecond)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	a.StartHealthcheck(ctx)
	defer func() { _ = a.StopHealthcheck(context.Background()) }()

	if err := fn(ctx); err != nil {
		a.logger.Error("Watch run failed.", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watcher.Changes():
			a.logger.Info("Catalog changed, reloading.")
			if err := a.Reload(ctx); err != nil {
				a.logger.Error("Catalog reload failed.", "error", err)
				continue
			}
			if err := fn(ctx); err != nil {
				a.logger.Error("Watch run failed.", "error", err)
			}
		}
	}
}
