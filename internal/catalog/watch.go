package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

var (
	errNotLoaded = errors.New("catalog not loaded")
	// ErrWatchUnsupported is returned by Watch for remote sources.
	ErrWatchUnsupported = errors.New("catalog: watching is only supported for local files")
)

const defaultDebounce = 250 * time.Millisecond

// Watch reloads the store whenever the source file is written, created, or renamed
// into place. It returns once the watcher is running; the loop stops with ctx.
// The parent directory is watched so editors that replace the file are still seen.
func (s *Store) Watch(ctx context.Context, debounce time.Duration) error {
	if s.loader.IsRemote() {
		return ErrWatchUnsupported
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	target, err := filepath.Abs(s.loader.Source())
	if err != nil {
		target = filepath.Clean(s.loader.Source())
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		_ = w.Close()
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.Info("catalog watcher started", zap.String("path", target))

	go s.watchLoop(ctx, w, target, debounce)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, w *fsnotify.Watcher, target string, debounce time.Duration) {
	defer func() {
		if err := w.Close(); err != nil {
			s.logger.Warn("catalog watcher close", zap.Error(err))
		}
	}()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("catalog watcher stopped")
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevant(event, target) {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			pending = true

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Warn("catalog watcher error", zap.Error(err))

		case <-timer.C:
			pending = false
			_ = s.Load(ctx)
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil {
		name = filepath.Clean(event.Name)
	}
	if name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
