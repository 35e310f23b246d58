package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global data directory (~/.tasktrack).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// GetDataFilePath returns the path of the task document.
// Resolution order (first match wins):
// 1. Explicit config via "data.file" (flag/config file/env)
// 2. Local project directory: ./.tasktrack/tasks.json (if ./.tasktrack exists)
// 3. XDG_DATA_HOME/tasktrack/tasks.json (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.tasktrack/tasks.json
func GetDataFilePath() string {
	if path := viper.GetString(KeyDataFile); path != "" {
		return expandHome(path)
	}

	if info, err := os.Stat(DirName); err == nil && info.IsDir() {
		return filepath.Join(DirName, DefaultDataFileName)
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName, DefaultDataFileName)
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return DefaultDataFileName
	}
	return filepath.Join(dir, DefaultDataFileName)
}

// GetDataDir returns the directory holding the task document.
func GetDataDir() string {
	return filepath.Dir(GetDataFilePath())
}

// GetCrashLogDir returns the directory crash logs are written to.
func GetCrashLogDir() string {
	return filepath.Join(GetDataDir(), CrashLogDirName)
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
