// Package watch monitors an installation root and re-runs discovery and
// validation whenever a plugin manifest is added, changed, or removed.
package watch

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/GoCodeAlone/pluginhub/discovery"
	"github.com/GoCodeAlone/pluginhub/manifest"
	"github.com/GoCodeAlone/pluginhub/validate"
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration used to coalesce bursts of
// filesystem events into a single re-scan.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger used for watcher diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithOnChange registers a callback invoked with a fresh validation report
// every time the install root is rescanned after a change.
func WithOnChange(fn func(*validate.Report)) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// Watcher monitors root for plugin manifest changes and re-runs discovery
// and validation on debounce.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *log.Logger
	onChange func(*validate.Report)

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup

	mu      sync.Mutex
	pending bool
}

// New creates a watcher over root. It does not begin watching until Start
// is called.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		debounce: 500 * time.Millisecond,
		logger:   log.New(os.Stderr, "[pluginhub-watch] ", log.LstdFlags),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching root's immediate subdirectories for manifest file
// changes and runs one initial scan. New subdirectories created after
// Start are picked up on their own manifest-create event only if root
// itself is watched; Start additionally watches root for that reason.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsWatcher = fsw

	if err := os.MkdirAll(w.root, 0o755); err != nil {
		_ = fsw.Close()
		return err
	}
	if err := fsw.Add(w.root); err != nil {
		_ = fsw.Close()
		return err
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		_ = fsw.Close()
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			_ = fsw.Add(filepath.Join(w.root, entry.Name()))
		}
	}

	w.logger.Printf("watching install root: %s", w.root)
	w.scan()

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	close(w.done)
	w.wg.Wait()
	if w.fsWatcher != nil {
		return w.fsWatcher.Close()
	}
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != manifest.ManifestFileName && event.Op&fsnotify.Create == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.fsWatcher.Add(event.Name)
				}
			}
			w.markPending()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("watcher error: %v", err)

		case <-ticker.C:
			if w.consumePending() {
				w.scan()
			}
		}
	}
}

func (w *Watcher) markPending() {
	w.mu.Lock()
	w.pending = true
	w.mu.Unlock()
}

func (w *Watcher) consumePending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	had := w.pending
	w.pending = false
	return had
}

func (w *Watcher) scan() {
	plugins, err := discovery.Discover(w.root)
	if err != nil {
		w.logger.Printf("discovery reported errors: %v", err)
	}
	report := validate.Validate(plugins)
	if !report.IsValid() {
		w.logger.Printf("validation found %d error(s)", len(report.Errors))
	}
	if w.onChange != nil {
		w.onChange(report)
	}
}
