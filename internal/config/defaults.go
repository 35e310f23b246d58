// Package config provides centralized configuration constants and path
// resolution for tasktrack.
package config

// Application identity.
const (
	AppName = "tasktrack"

	// DirName is the per-project and per-user data directory name.
	DirName = ".tasktrack"

	// ConfigName is the config file base name searched by viper (.tasktrack.yaml).
	ConfigName = ".tasktrack"

	// EnvPrefix prefixes every environment override, e.g. TASKTRACK_DATA_FILE.
	EnvPrefix = "TASKTRACK"
)

// DefaultDataFileName is the task document name inside the data directory.
const DefaultDataFileName = "tasks.json"

// Logging defaults.
const (
	DefaultLogLevel = "warn"

	// CrashLogDirName is created next to the data file.
	CrashLogDirName = "crash_logs"

	// MaxCrashLogs is the number of crash logs kept on disk.
	MaxCrashLogs = 10
)

// Viper keys shared between flags, config files and the environment.
const (
	KeyVerbose    = "verbose"
	KeyQuiet      = "quiet"
	KeyJSON       = "json"
	KeyConfig     = "config"
	KeyDataFile   = "data.file"
	KeyDataFormat = "data.format"
	KeyDataLock   = "data.lock"
	KeyLogLevel   = "logging.level"
	KeyLogFile    = "logging.file"
)

// SettableKeys lists the keys accepted by `tasktrack config set`.
func SettableKeys() []string {
	return []string{KeyDataFile, KeyDataFormat, KeyDataLock, KeyLogLevel, KeyLogFile}
}
