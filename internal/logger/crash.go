// Package logger configures structured logging and crash recovery for tasktrack.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/josephgoksu/tasktrack/internal/config"
	"github.com/rs/zerolog/log"
)

// CrashContext stores context for crash logging.
type CrashContext struct {
	mu        sync.RWMutex
	command   string
	args      []string
	version   string
	dataFile  string
	basePath  string
	lastInput string
}

// globalContext is the singleton crash context.
var globalContext = &CrashContext{}

// exit is swapped in tests.
var exit = os.Exit

// SetBasePath sets the directory crash_logs/ is created in (the data directory).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand records the command being executed and its arguments.
func SetCommand(cmd string, args []string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
	globalContext.args = append([]string(nil), args...)
}

// SetDataFile records the task document in use.
func SetDataFile(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.dataFile = path
}

// SetLastInput records the last interactive answer for crash context.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), 500)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	RunID      string    `json:"run_id"`
	Version    string    `json:"version"`
	Command    string    `json:"command"`
	Args       []string  `json:"args,omitempty"`
	DataFile   string    `json:"data_file,omitempty"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	LastInput  string    `json:"last_input,omitempty"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// HandlePanic is a deferred function that recovers from panics, writes a
// crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		entry := createCrashLog(r)
		log.Error().Str("panic", entry.PanicValue).Str("command", entry.Command).Msg("unrecovered panic")

		path, err := writeCrashLog(entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
			fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, entry.StackTrace)
		}

		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "╭──────────────────────────────────────────────────────╮\n")
		fmt.Fprintf(os.Stderr, "│ tasktrack encountered an unexpected error            │\n")
		fmt.Fprintf(os.Stderr, "╰──────────────────────────────────────────────────────╯\n")
		if path != "" {
			fmt.Fprintf(os.Stderr, "\nA crash log has been saved to:\n  %s\n\n", path)
		}
		exit(1)
	}
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		RunID:      RunID(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		Args:       globalContext.args,
		DataFile:   globalContext.dataFile,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// writeCrashLog writes entry to disk and returns the file path.
func writeCrashLog(entry CrashLog) (string, error) {
	dir := getCrashLogDir()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	// Make room first so the new log always survives.
	if err := cleanOldCrashLogs(dir, config.MaxCrashLogs-1); err != nil {
		log.Warn().Err(err).Msg("failed to clean old crash logs")
	}

	path := getCrashLogPath(entry.Timestamp)
	if err := os.WriteFile(path, []byte(formatCrashLog(entry)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		return config.GetCrashLogDir()
	}
	return filepath.Join(basePath, config.CrashLogDirName)
}

func getCrashLogPath(t time.Time) string {
	filename := fmt.Sprintf("crash_%s.log", t.Format("20060102_150405.000"))
	return filepath.Join(getCrashLogDir(), filename)
}

func formatCrashLog(entry CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80) + "\n"
	section := func(title, body string) {
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(rule)
	sb.WriteString("TASKTRACK CRASH LOG\n")
	sb.WriteString(rule + "\n")

	fmt.Fprintf(&sb, "Timestamp: %s\n", entry.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Run:       %s\n", entry.RunID)
	fmt.Fprintf(&sb, "Version:   %s\n", entry.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", strings.TrimSpace(entry.Command+" "+strings.Join(entry.Args, " ")))
	if entry.DataFile != "" {
		fmt.Fprintf(&sb, "Data file: %s\n", entry.DataFile)
	}
	fmt.Fprintf(&sb, "Go:        %s\n", entry.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", entry.OS, entry.Arch)

	section("PANIC VALUE", entry.PanicValue)
	section("STACK TRACE", entry.StackTrace)
	if entry.LastInput != "" {
		section("LAST USER INPUT", entry.LastInput)
	}

	sb.WriteString("\n" + rule)
	sb.WriteString("END OF CRASH LOG\n")
	sb.WriteString(rule)
	return sb.String()
}

func isCrashLog(e os.DirEntry) bool {
	return !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log")
}

// cleanOldCrashLogs removes the oldest crash logs so at most keep remain.
// os.ReadDir returns entries sorted by name, which embeds the timestamp.
func cleanOldCrashLogs(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var crashLogs []os.DirEntry
	for _, e := range entries {
		if isCrashLog(e) {
			crashLogs = append(crashLogs, e)
		}
	}
	if len(crashLogs) <= keep {
		return nil
	}

	for _, e := range crashLogs[:len(crashLogs)-keep] {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", e.Name(), err)
		}
	}
	return nil
}

// ListCrashLogs returns the crash logs on disk, oldest first.
func ListCrashLogs() ([]string, error) {
	dir := getCrashLogDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if isCrashLog(e) {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}
