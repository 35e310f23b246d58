package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTaskStore_WatchRequiresOsFs(t *testing.T) {
	s, _ := setupTestStore(t)
	err := s.Watch(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrWatchUnsupported)
}

func TestFileTaskStore_WatchNotifiesOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s, err := NewFileTaskStore(afero.NewOsFs(), path, WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, s.Save(context.Background(), sampleTasks()))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change notification")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
