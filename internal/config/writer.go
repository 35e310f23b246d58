package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var (
	validFormats   = []string{"json", "yaml", "yml", "toml"}
	validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}
)

// WritableConfigFile returns the file `config set` writes to: the file viper
// loaded, else ./.tasktrack/.tasktrack.yaml when the project directory
// exists, else ~/.tasktrack.yaml.
func WritableConfigFile() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	if info, err := os.Stat(DirName); err == nil && info.IsDir() {
		return filepath.Join(DirName, ConfigName+".yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ConfigName+".yaml"), nil
}

// ParseValue checks raw against the rules for key and returns the typed value.
func ParseValue(key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch key {
	case KeyDataFile, KeyLogFile:
		return raw, nil
	case KeyDataFormat:
		v := strings.ToLower(raw)
		if !slices.Contains(validFormats, v) {
			return nil, fmt.Errorf("invalid format %q (want one of %s)", raw, strings.Join(validFormats, ", "))
		}
		if v == "yml" {
			v = "yaml"
		}
		return v, nil
	case KeyLogLevel:
		v := strings.ToLower(raw)
		if !slices.Contains(validLogLevels, v) {
			return nil, fmt.Errorf("invalid log level %q (want one of %s)", raw, strings.Join(validLogLevels, ", "))
		}
		return v, nil
	case KeyDataLock:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q for %s", raw, key)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown config key %q (settable: %s)", key, strings.Join(SettableKeys(), ", "))
	}
}

// SaveValue writes key=value into the YAML config file at path, keeping the
// other settings in the file.
func SaveValue(path, key string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	v.Set(key, value)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
