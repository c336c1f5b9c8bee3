package catalog

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ryderdavid/agentsmd/internal/ctxlog"
)

// Watcher observes a packs root and signals when the catalog should be
// re-snapshotted. Raw filesystem events are debounced: editors produce
// bursts of writes, and each burst should trigger one rebuild.
type Watcher struct {
	root     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   int

	changes chan struct{}
}

// NewWatcher creates a watcher over the given packs root.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		root:     root,
		debounce: debounce,
		watcher:  fsw,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes returns the channel that receives one signal per debounced burst
// of filesystem changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching. It adds watches for the root and every
// subdirectory, then processes events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Catalog watcher started.", "root", w.root)

	go w.processEvents(ctx)
	return nil
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// New directories need their own watch for events below them.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addWatchesRecursive(event.Name)
				}
			}
			logger.Debug("Catalog change observed.", "path", event.Name, "op", event.Op.String())
			w.pendingMu.Lock()
			w.pending++
			w.pendingMu.Unlock()
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("Catalog watcher error.", "error", err)

		case <-timer.C:
			w.pendingMu.Lock()
			count := w.pending
			w.pending = 0
			w.pendingMu.Unlock()
			if count == 0 {
				continue
			}
			logger.Debug("Catalog change burst settled.", "events", count)
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
