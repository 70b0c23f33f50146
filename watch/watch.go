// Package watch reruns generation when its input files change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/lcapgen/errors"
	"github.com/teranos/lcapgen/logger"
)

// DefaultDebounce is used when no debounce period is configured
const DefaultDebounce = 500 * time.Millisecond

// Handler runs once per debounced burst with the files that changed.
// Calls never overlap.
type Handler func(ctx context.Context, changed []string) error

// Watcher watches a fixed set of files. Parent directories are watched
// rather than the files themselves so editors that save by rename are seen.
type Watcher struct {
	files    map[string]bool
	fsw      *fsnotify.Watcher
	debounce time.Duration
	handler  Handler
	log      *zap.SugaredLogger

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
	fire    chan struct{}
}

// New starts watching files. Events arriving before Run are buffered.
func New(files []string, debounce time.Duration, handler Handler) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("nothing to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		fsw:      fsw,
		debounce: debounce,
		handler:  handler,
		log:      logger.Named("watch"),
		pending:  make(map[string]bool),
		fire:     make(chan struct{}, 1),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.WithHint(
				errors.Wrapf(err, "failed to watch %s", dir),
				"the directory of every watched file must exist")
		}
	}
	return w, nil
}

// WithLogger replaces the logger
func (w *Watcher) WithLogger(l *zap.SugaredLogger) *Watcher {
	if l != nil {
		w.log = l
	}
	return w
}

// Files returns the watched paths, sorted
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run dispatches debounced changes to the handler until ctx is done.
// The handler runs on this goroutine, so Run returns only after any
// in-flight regeneration has finished. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debugw("Change detected", logger.FieldFile, event.Name, "op", event.Op.String())
			w.schedule(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)

		case <-w.fire:
			changed := w.drain()
			if len(changed) == 0 {
				continue
			}
			w.log.Infow("Regenerating", "files", changed)
			if err := w.handler(ctx, changed); err != nil {
				w.log.Errorw("Regeneration failed", logger.FieldError, err)
			}
		}
	}
}

// schedule restarts the debounce timer
func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[filepath.Clean(name)] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for f := range w.pending {
		changed = append(changed, f)
	}
	sort.Strings(changed)
	w.pending = make(map[string]bool)
	return changed
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
