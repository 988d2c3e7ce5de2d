package fixture

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/seedwork/pkg/core"
)

const defaultDebounce = 50 * time.Millisecond

// WatchConfig holds the configuration for a Watcher.
type WatchConfig struct {
	Logger *slog.Logger
	// Debounce is the quiet period before pending changes are delivered. Zero means 50ms.
	Debounce time.Duration
	// ErrorHandler receives watcher failures. When nil they are logged.
	ErrorHandler func(error)
}

// Watcher reports changes to fixture files as core events whose ID is the file path.
type Watcher struct {
	config WatchConfig
}

var _ core.Watchable = (*Watcher)(nil)

func NewWatcher(config WatchConfig) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = defaultDebounce
	}
	return &Watcher{config: config}
}

// Watch observes the directory tree under the static prefix of pattern.
// Bursts of changes are coalesced per path and delivered in path order once
// the tree has been quiet for the debounce period. The channel closes when
// ctx is done.
func (w *Watcher) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	slashed := path.Clean(filepath.ToSlash(pattern))
	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("invalid fixture pattern %q", pattern)
	}
	base, _ := doublestar.SplitPattern(slashed)
	base = filepath.FromSlash(base)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := addTree(fsw, base); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	out := make(chan core.Event)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		return w.run(ctx, fsw, slashed, out)
	}, lifecycle.WithErrorHandler(w.handleError))

	if w.config.Logger != nil {
		w.config.Logger.Debug("watching fixtures", "pattern", pattern, "base", base)
	}
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, pattern string, out chan<- core.Event) error {
	defer close(out)
	defer fsw.Close()

	pending := make(map[string]core.Event)
	timer := time.NewTimer(w.config.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fsw, event.Name); err != nil {
						w.handleError(err)
					}
					continue
				}
			}

			typ := mapEventType(event)
			if typ == "" {
				continue
			}
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(event.Name)); !ok {
				continue
			}
			pending[event.Name] = core.Event{
				Type:      typ,
				ID:        event.Name,
				Reason:    "filesystem",
				Timestamp: time.Now().Unix(),
			}
			timer.Reset(w.config.Debounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			for _, p := range paths {
				select {
				case out <- pending[p]:
				case <-ctx.Done():
					return nil
				}
			}
			clear(pending)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.handleError(err)
		}
	}
}

func (w *Watcher) handleError(err error) {
	if w.config.ErrorHandler != nil {
		w.config.ErrorHandler(err)
	} else if w.config.Logger != nil {
		w.config.Logger.Error("fixture watcher error", "error", err)
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	}
	return ""
}

// addTree watches root and every directory below it.
func addTree(fsw *fsnotify.Watcher, root string) error {
	if root == "" {
		root = "."
	}
	return filepath.WalkDir(root, func(dir string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", dir, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	})
}
