package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/josephgoksu/tasktrack/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// DefaultDataFile is the document name used when only a directory is known.
	DefaultDataFile = "tasks.json"

	backupInfix    = ".backup-"
	backupLayout   = "20060102-150405"
	lockSuffix     = ".lock"
	tempSuffix     = ".tmp"
	lockRetryDelay = 50 * time.Millisecond
)

// FileTaskStore implements the TaskStore interface on top of an afero
// filesystem. Every Save rewrites the whole document through a temp file and
// a rename.
type FileTaskStore struct {
	fs     afero.Fs
	path   string
	format string
	flk    *flock.Flock // nil unless WithFileLock is used
	log    zerolog.Logger
	now    func() time.Time
}

// Option configures a FileTaskStore.
type Option func(*FileTaskStore)

// WithFormat selects the document format (json, yaml or toml). Without it the
// format is inferred from the file extension.
func WithFormat(format string) Option {
	return func(s *FileTaskStore) { s.format = format }
}

// WithFileLock guards writes with an OS-level lock on "<path>.lock".
// It only has an effect on the OS filesystem.
func WithFileLock() Option {
	return func(s *FileTaskStore) { s.flk = flock.New(s.path + lockSuffix) }
}

// WithLogger sets the logger used to report degraded reads.
func WithLogger(l zerolog.Logger) Option {
	return func(s *FileTaskStore) { s.log = l }
}

// WithClock overrides the time source used to name backups.
func WithClock(now func() time.Time) Option {
	return func(s *FileTaskStore) { s.now = now }
}

// NewFileTaskStore creates a store for the document at path.
// The file is not touched until the first operation.
func NewFileTaskStore(fs afero.Fs, path string, opts ...Option) (*FileTaskStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("data file path is empty")
	}
	s := &FileTaskStore{
		fs:   fs,
		path: filepath.Clean(path),
		log:  log.Logger,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	format, err := normalizeFormat(s.format, s.path)
	if err != nil {
		return nil, err
	}
	s.format = format

	if s.flk != nil {
		if _, ok := s.fs.(*afero.OsFs); !ok {
			s.flk = nil
		}
	}
	s.log = s.log.With().Str("component", "store").Str("path", s.path).Logger()
	return s, nil
}

// Path returns the location of the task document.
func (s *FileTaskStore) Path() string {
	return s.path
}

// Format returns the document format in use.
func (s *FileTaskStore) Format() string {
	return s.format
}

// ensureFile creates the directory and an empty document when missing.
func (s *FileTaskStore) ensureFile() error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to stat data file %s: %w", s.path, err)
	}
	if exists {
		return nil
	}

	empty, err := encodeTasks(s.format, nil)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, s.path, empty, 0o644); err != nil {
		return fmt.Errorf("failed to create data file %s: %w", s.path, err)
	}
	s.log.Debug().Msg("created empty task file")
	return nil
}

// read loads and parses the document without creating it.
func (s *FileTaskStore) read() ([]models.Task, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", s.path, err)
	}
	tasks, err := decodeTasks(s.format, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return tasks, nil
}

// Load returns every persisted task, or an empty slice when the document
// cannot be read or parsed.
func (s *FileTaskStore) Load(ctx context.Context) []models.Task {
	if err := ctx.Err(); err != nil {
		s.log.Error().Err(err).Msg("load cancelled")
		return []models.Task{}
	}
	if err := s.ensureFile(); err != nil {
		s.log.Error().Err(err).Msg("failed to prepare task file")
		return []models.Task{}
	}

	tasks, err := s.read()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load tasks")
		return []models.Task{}
	}
	s.log.Debug().Int("tasks", len(tasks)).Msg("loaded tasks")
	return tasks
}

// Save writes tasks to a temp file and renames it over the document.
func (s *FileTaskStore) Save(ctx context.Context, tasks []models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := encodeTasks(s.format, tasks)
	if err != nil {
		return fmt.Errorf("failed to marshal tasks to %s: %w", s.format, err)
	}
	if err := s.writeAtomic(data); err != nil {
		return err
	}
	s.log.Debug().Int("tasks", len(tasks)).Msg("saved tasks")
	return nil
}

func (s *FileTaskStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tempFilePath := s.path + tempSuffix
	defer func() { _ = s.fs.Remove(tempFilePath) }()

	if err := afero.WriteFile(s.fs, tempFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}
	if err := s.fs.Rename(tempFilePath, s.path); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.path, err)
	}
	return nil
}

// Backup copies the current document next to itself with a timestamp in the
// name. Backups are never pruned.
func (s *FileTaskStore) Backup(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	unlock, err := s.lock(ctx)
	if err != nil {
		return "", err
	}
	defer unlock()

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return "", fmt.Errorf("failed to stat data file %s: %w", s.path, err)
	}
	if !exists {
		return "", nil
	}

	input, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read source file %s for backup: %w", s.path, err)
	}

	destinationPath, err := s.nextBackupPath()
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(s.fs, destinationPath, input, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	s.log.Info().Str("backup", destinationPath).Msg("backup created")
	return destinationPath, nil
}

// BackupPath returns the backup file name for the given time.
func (s *FileTaskStore) BackupPath(t time.Time) string {
	ext := filepath.Ext(s.path)
	return strings.TrimSuffix(s.path, ext) + backupInfix + t.Format(backupLayout) + ext
}

// nextBackupPath avoids clobbering a backup taken within the same second.
func (s *FileTaskStore) nextBackupPath() (string, error) {
	candidate := s.BackupPath(s.now())
	ext := filepath.Ext(candidate)
	base := strings.TrimSuffix(candidate, ext)
	for i := 1; ; i++ {
		exists, err := afero.Exists(s.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to stat backup file %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
}

// ListBackups returns backup files that sit next to the document, oldest first.
func (s *FileTaskStore) ListBackups() ([]string, error) {
	ext := filepath.Ext(s.path)
	pattern := strings.TrimSuffix(s.path, ext) + backupInfix + "*" + ext
	matches, err := afero.Glob(s.fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	return matches, nil
}

// Restore replaces the document with the contents of sourcePath.
func (s *FileTaskStore) Restore(ctx context.Context, sourcePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	sourceData, err := afero.ReadFile(s.fs, sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source backup file %s: %w", sourcePath, err)
	}
	format, err := normalizeFormat("", sourcePath)
	if err != nil {
		return err
	}
	tasks, err := decodeTasks(format, sourceData)
	if err != nil {
		return fmt.Errorf("backup %s is not a valid task file: %w", sourcePath, err)
	}

	data, err := encodeTasks(s.format, tasks)
	if err != nil {
		return err
	}
	if err := s.writeAtomic(data); err != nil {
		return fmt.Errorf("failed to restore from %s: %w", sourcePath, err)
	}
	s.log.Info().Str("source", sourcePath).Int("tasks", len(tasks)).Msg("restored tasks")
	return nil
}

// CheckHealth verifies the document exists, is read/write accessible and parses.
func (s *FileTaskStore) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := s.fs.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("data file %s does not exist", s.path)
		}
		return fmt.Errorf("failed to stat data file %s: %w", s.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("data file %s is a directory", s.path)
	}

	f, err := s.fs.OpenFile(s.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("data file %s is not read/write accessible: %w", s.path, err)
	}
	_ = f.Close()

	if _, err := s.read(); err != nil {
		return err
	}
	return nil
}

// FileInfo reports metadata about the document and the number of tasks it holds.
func (s *FileTaskStore) FileInfo(ctx context.Context) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &FileInfo{Path: s.path, Format: s.format}
	info, err := s.fs.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to stat data file %s: %w", s.path, err)
	}

	tasks, err := s.read()
	if err != nil {
		return nil, err
	}

	result.Exists = true
	result.Size = info.Size()
	result.LastModified = info.ModTime()
	result.TaskCount = len(tasks)
	return result, nil
}

// lock acquires the write lock when one is configured. The returned func
// releases it.
func (s *FileTaskStore) lock(ctx context.Context) (func(), error) {
	if s.flk == nil {
		return func() {}, nil
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	locked, err := s.flk.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("could not lock %s: %w", s.flk.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("could not lock %s", s.flk.Path())
	}
	return func() { _ = s.flk.Unlock() }, nil
}

// Close releases the file lock if one is held.
// flock.Unlock is idempotent and can be called even if the lock is not held.
func (s *FileTaskStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}

var _ TaskStore = (*FileTaskStore)(nil)
