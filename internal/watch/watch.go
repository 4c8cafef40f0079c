// ABOUTME: Watches the preferences directory for changes to prefs.toml
// ABOUTME: Watches the directory rather than the file so atomic renames are observed

package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change observed.
type Op int

const (
	Changed Op = iota + 1
	Removed
)

func (o Op) String() string {
	switch o {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports a change to the watched file.
type Event struct {
	Op   Op
	Path string
}

// Watcher observes a single file inside a directory.
type Watcher struct {
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	dir     string
	name    string
}

// New creates a Watcher for dir/name. The directory must exist.
func New(dir, name string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(absDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", absDir, err)
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		dir:     absDir,
		name:    name,
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return filepath.Join(w.dir, w.name)
}

// Run delivers events to fn until ctx is cancelled or the watcher fails.
// It closes the underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != w.name {
				continue
			}
			if op, ok := classify(event); ok {
				w.logger.Debug("prefs file event", "op", op.String(), "fsnotify", event.Op.String())
				fn(Event{Op: op, Path: w.Path()})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", w.dir, err)
		}
	}
}

func classify(event fsnotify.Event) (Op, bool) {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Removed, true
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return Changed, true
	default:
		return 0, false
	}
}
