package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Reloads that fail
// to load are logged and dropped; the previous config stays in effect.
type Watcher struct {
	fs   afero.Fs
	path string
	log  *zap.Logger

	w       *fsnotify.Watcher
	updates chan Config
	cancel  context.CancelFunc
	done    chan struct{}
}

// Watch starts watching path. The directory is watched rather than the
// file so that editors which replace the file on save are still seen.
func Watch(ctx context.Context, fsys afero.Fs, path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		fs:      fsys,
		path:    abs,
		log:     log,
		w:       fw,
		updates: make(chan Config, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Updates delivers successfully reloaded configs. Only the newest pending
// config is kept.
func (w *Watcher) Updates() <-chan Config { return w.updates }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return w.w.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.log.Debug("config changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(debounce)

		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.fs, w.path)
	if err != nil {
		w.log.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("config reloaded", zap.String("path", w.path))

	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
