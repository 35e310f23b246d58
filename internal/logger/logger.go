package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/tasktrack/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// runID identifies one process invocation in log lines and crash logs.
var runID = strings.SplitN(uuid.NewString(), "-", 2)[0]

// RunID returns the identifier attached to every log line of this process.
func RunID() string {
	return runID
}

// Options controls Setup.
type Options struct {
	// Level is a zerolog level name; empty means warn.
	Level string
	// Verbose lowers the level to at least debug.
	Verbose bool
	// File, when set, receives JSON log lines in addition to the console.
	File string
	// Out is the console destination. Defaults to os.Stderr.
	Out io.Writer
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = config.DefaultLogLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Setup configures the global zerolog logger and returns it. The returned
// close function releases the log file, if any.
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), noop, err
	}
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    out != os.Stderr,
	}}

	closeFn := noop
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closeFn = f.Close
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("run", runID).
		Logger()

	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return l, closeFn, nil
}
