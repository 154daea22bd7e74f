package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/varlens/internal/debug"
)

// Watcher reloads the project config when .varlens.kdl changes on disk
// and hands the merged result to the registered callback. Reloads are
// debounced; editors write config files in bursts.
type Watcher struct {
	projectDir string
	debounce   time.Duration
	onReload   func(*Config)

	mu      sync.Mutex
	fw      *fsnotify.Watcher
	timer   *time.Timer
	closed  bool
	closeCh chan struct{}
}

const defaultDebounce = 300 * time.Millisecond

// NewWatcher starts watching projectDir for config changes. onReload
// runs on the watcher goroutine with the freshly merged config; a
// reload that fails to parse keeps the previous config and is logged.
func NewWatcher(projectDir string, onReload func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(projectDir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		projectDir: projectDir,
		debounce:   defaultDebounce,
		onReload:   onReload,
		fw:         fw,
		closeCh:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != FileName {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			debug.Printf("config watcher error: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.projectDir)
	if err != nil {
		debug.Printf("config reload failed, keeping previous: %v", err)
		return
	}
	w.onReload(cfg)
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	return w.fw.Close()
}
