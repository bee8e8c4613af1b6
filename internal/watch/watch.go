// Package watch provides debounced filesystem watching for rebuild-on-change workflows.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/eykd/mdcombine-go/internal/document"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for further changes
// before emitting a batch.
const DefaultDebounce = 500 * time.Millisecond

// skipDirs are directory names never worth watching.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Watcher watches a document folder and emits debounced batches of
// changed document names.
type Watcher struct {
	folder   string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]struct{}

	changes chan []string
}

// New creates a Watcher for the given folder. A non-positive debounce
// falls back to DefaultDebounce.
func New(folder string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		folder:   folder,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		pending:  make(map[string]struct{}),
		changes:  make(chan []string, 1),
	}, nil
}

// Changes returns the channel of debounced change batches. Each batch
// holds the folder-relative names of documents that changed since the
// previous batch, sorted. The channel is closed when the watcher stops.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Start begins watching the folder. Events are delivered until ctx is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatches(w.folder); err != nil {
		w.fsw.Close()
		return err
	}

	go w.run(ctx)

	w.logger.Debug("watching folder", "folder", w.folder, "debounce", w.debounce)
	return nil
}

// Stop stops the watcher. The changes channel is closed once the event
// loop exits.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// addWatches registers every directory under root with the fsnotify watcher.
func (w *Watcher) addWatches(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if path != root && (skipDirs[base] || strings.HasPrefix(base, ".")) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("cannot watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// run processes fsnotify events with debouncing until the context is
// cancelled or the watcher is closed.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.changes)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

// handle records a single fsnotify event, adding watches for new
// directories as they appear.
func (w *Watcher) handle(event fsnotify.Event) {
	if !watched(event.Name) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				w.watchNewDirectory(event.Name)
			}
		}
		return
	}

	rel, err := filepath.Rel(w.folder, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	w.pendingMu.Lock()
	w.pending[rel] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("document changed", "name", rel, "op", event.Op.String())
}

// watchNewDirectory adds a watch for a directory created after Start.
func (w *Watcher) watchNewDirectory(path string) {
	base := filepath.Base(path)
	if skipDirs[base] || strings.HasPrefix(base, ".") {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("cannot watch directory", "path", path, "error", err)
	}
}

// flush emits the pending batch. If the receiver has not consumed the
// previous batch yet, the names are carried over to the next tick.
func (w *Watcher) flush() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	batch := make([]string, 0, len(w.pending))
	for name := range w.pending {
		batch = append(batch, name)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	slices.Sort(batch)

	select {
	case w.changes <- batch:
	default:
		w.pendingMu.Lock()
		for _, name := range batch {
			w.pending[name] = struct{}{}
		}
		w.pendingMu.Unlock()
	}
}

// watched reports whether the given path names a document the combiner
// cares about.
func watched(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, document.TemplateSuffix) ||
		strings.HasSuffix(name, document.SourceSuffix) ||
		strings.HasSuffix(name, document.MarkdownSuffix)
}
