package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// watchDebounce coalesces the write+rename burst produced by a single Save.
const watchDebounce = 100 * time.Millisecond

// ErrWatchUnsupported is returned when the store is not backed by the OS filesystem.
var ErrWatchUnsupported = errors.New("watching requires the OS filesystem")

// Watch calls onChange whenever the task document changes on disk, until ctx
// is cancelled. The parent directory is watched because saves replace the
// file through a rename.
func (s *FileTaskStore) Watch(ctx context.Context, onChange func()) error {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return ErrWatchUnsupported
	}
	if err := s.ensureFile(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var (
		timer  *time.Timer
		fire   <-chan time.Time
		target = filepath.Clean(s.path)
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("watch error")
		}
	}
}
