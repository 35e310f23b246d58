package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/tasktrack/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrashHandler_SetContext(t *testing.T) {
	globalContext = &CrashContext{}

	SetBasePath("/tmp/test-tasktrack")
	SetVersion("1.0.0-test")
	SetCommand("tasktrack add", []string{"Buy", "milk"})
	SetDataFile("/tmp/test-tasktrack/tasks.json")
	SetLastInput("  Buy milk  ")

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	assert.Equal(t, "/tmp/test-tasktrack", globalContext.basePath)
	assert.Equal(t, "1.0.0-test", globalContext.version)
	assert.Equal(t, "tasktrack add", globalContext.command)
	assert.Equal(t, []string{"Buy", "milk"}, globalContext.args)
	assert.Equal(t, "/tmp/test-tasktrack/tasks.json", globalContext.dataFile)
	assert.Equal(t, "Buy milk", globalContext.lastInput)
}

func TestCrashHandler_SetLastInput_Truncation(t *testing.T) {
	globalContext = &CrashContext{}

	SetLastInput(strings.Repeat("a", 3000))

	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()
	assert.LessOrEqual(t, len(globalContext.lastInput), 520)
	assert.Contains(t, globalContext.lastInput, "[truncated]")
}

func TestCrashHandler_CreateCrashLog(t *testing.T) {
	globalContext = &CrashContext{
		version:   "1.0.0",
		command:   "tasktrack done",
		args:      []string{"lx1"},
		lastInput: "y",
	}

	entry := createCrashLog("test panic")

	assert.Equal(t, "test panic", entry.PanicValue)
	assert.Equal(t, "1.0.0", entry.Version)
	assert.Equal(t, "tasktrack done", entry.Command)
	assert.Equal(t, []string{"lx1"}, entry.Args)
	assert.Equal(t, RunID(), entry.RunID)
	assert.NotEmpty(t, entry.StackTrace)
	assert.NotEmpty(t, entry.GoVersion)
}

func TestCrashHandler_FormatCrashLog(t *testing.T) {
	entry := CrashLog{
		Timestamp:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		RunID:      "deadbeef",
		Version:    "1.0.0",
		Command:    "tasktrack list",
		Args:       []string{"--status", "todo"},
		DataFile:   "/home/u/.tasktrack/tasks.json",
		PanicValue: "test panic",
		StackTrace: "goroutine 1 [running]:\nmain.main()",
		LastInput:  "user input",
		GoVersion:  "go1.24.3",
		OS:         "darwin",
		Arch:       "arm64",
	}

	formatted := formatCrashLog(entry)

	for _, expected := range []string{
		"TASKTRACK CRASH LOG",
		"Timestamp: 2025-01-01T12:00:00Z",
		"Run:       deadbeef",
		"Command:   tasktrack list --status todo",
		"Data file: /home/u/.tasktrack/tasks.json",
		"OS/Arch:   darwin/arm64",
		"PANIC VALUE",
		"goroutine 1 [running]",
		"LAST USER INPUT",
		"END OF CRASH LOG",
	} {
		assert.Contains(t, formatted, expected)
	}
}

func TestCrashHandler_WriteCrashLog(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".tasktrack")
	globalContext = &CrashContext{basePath: basePath}

	path, err := writeCrashLog(CrashLog{Timestamp: time.Now(), PanicValue: "test panic", StackTrace: "stack"})
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(basePath, config.CrashLogDirName))

	logs, err := ListCrashLogs()
	require.NoError(t, err)
	require.Equal(t, []string{path}, logs)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "test panic")
}

func TestCrashHandler_KeepsAtMostMaxLogs(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".tasktrack")
	crashDir := filepath.Join(basePath, config.CrashLogDirName)
	require.NoError(t, os.MkdirAll(crashDir, 0o755))
	globalContext = &CrashContext{basePath: basePath}

	for i := range config.MaxCrashLogs + 5 {
		name := fmt.Sprintf("crash_20200101_1200%02d.000.log", i)
		require.NoError(t, os.WriteFile(filepath.Join(crashDir, name), []byte("old"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(crashDir, "notes.txt"), []byte("keep"), 0o644))

	newest, err := writeCrashLog(CrashLog{Timestamp: time.Now(), PanicValue: "fresh"})
	require.NoError(t, err)

	logs, err := ListCrashLogs()
	require.NoError(t, err)
	assert.Len(t, logs, config.MaxCrashLogs)
	assert.Contains(t, logs, newest)
	assert.NotContains(t, logs, filepath.Join(crashDir, "crash_20200101_120000.000.log"))
	assert.FileExists(t, filepath.Join(crashDir, "notes.txt"))
}

func TestCrashHandler_GetCrashLogPath(t *testing.T) {
	globalContext = &CrashContext{basePath: "/tmp/test"}

	path := getCrashLogPath(time.Date(2025, 1, 15, 14, 30, 45, 0, time.UTC))
	assert.Equal(t, "/tmp/test/crash_logs/crash_20250115_143045.000.log", path)
}

func TestHandlePanic_WritesLogAndExits(t *testing.T) {
	basePath := t.TempDir()
	globalContext = &CrashContext{basePath: basePath, command: "tasktrack stats"}

	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	func() {
		defer HandlePanic()
		panic("boom")
	}()

	assert.Equal(t, 1, code)
	logs, err := ListCrashLogs()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	content, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "boom")
	assert.Contains(t, string(content), "tasktrack stats")
}
