package store

import (
	"context"
	"time"

	"github.com/josephgoksu/tasktrack/models"
)

// TaskStore defines the interface for task persistence.
// The whole collection is read and written as a single document; there is
// no per-task access at this layer.
type TaskStore interface {
	// Load returns every persisted task. It creates the backing file (and
	// its directory) holding an empty collection when missing. Read or parse
	// failures are logged and yield an empty slice rather than an error.
	Load(ctx context.Context) []models.Task

	// Save replaces the persisted document with tasks.
	Save(ctx context.Context, tasks []models.Task) error

	// Backup copies the current document to a timestamped sibling file and
	// returns its path. It returns an empty path and no error when there is
	// nothing to back up yet.
	Backup(ctx context.Context) (string, error)

	// Restore replaces the current document with the contents of sourcePath.
	// The source must parse as a task collection.
	Restore(ctx context.Context, sourcePath string) error

	// CheckHealth returns nil when the document exists, can be opened for
	// reading and writing, and parses.
	CheckHealth(ctx context.Context) error

	// FileInfo reports metadata about the document.
	FileInfo(ctx context.Context) (*FileInfo, error)

	// Path returns the location of the document.
	Path() string

	// Close releases any resources held by the store, such as file locks.
	Close() error
}

// FileInfo describes the persisted document.
type FileInfo struct {
	Path         string    `json:"path"`
	Format       string    `json:"format"`
	Exists       bool      `json:"exists"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified,omitempty"`
	TaskCount    int       `json:"taskCount"`
}
