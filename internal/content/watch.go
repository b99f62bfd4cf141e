package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher reloads a content file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename keep triggering reloads.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(Pack)
	logger   *zap.Logger
	debounce time.Duration

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithWatchLogger sets the logger for reload failures.
func WithWatchLogger(l *zap.Logger) WatchOption {
	return func(w *Watcher) { w.logger = l }
}

// Watch starts watching path. onReload receives every pack that loads and
// validates; broken edits are logged and skipped, keeping the last good pack.
// onReload runs on the watcher goroutine.
func Watch(ctx context.Context, path string, onReload func(Pack), opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("content path is required")
	}
	if onReload == nil {
		return nil, fmt.Errorf("reload callback cannot be nil")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving content path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onReload: onReload,
		logger:   zap.NewNop(),
		debounce: defaultDebounce,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.run(ctx)
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.watcher.Close()
	})
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("content watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	pack, err := LoadPack(w.path)
	if err != nil {
		w.logger.Warn("content reload failed, keeping previous pack",
			zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("content reloaded", zap.String("path", w.path))
	w.onReload(pack)
}
