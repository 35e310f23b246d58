/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/tasktrack/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change tasktrack settings",
	Long: `View and change tasktrack settings.

Settings are read from (highest precedence first): command-line flags,
TASKTRACK_* environment variables (e.g. TASKTRACK_DATA_FILE), the config
file, and built-in defaults.

Settable keys:
  data.file       path of the task file
  data.format     json, yaml or toml (empty infers it from the extension)
  data.lock       true to serialize writes with a lock file
  logging.level   trace, debug, info, warn, error or disabled
  logging.file    mirror diagnostic logs into this file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a single setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd, args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting to the config file",
	Example: `  tasktrack config set data.format yaml
  tasktrack config set data.lock true
  tasktrack config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd, args[0], args[1])
	},
}

var configSetPath string

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)

	configSetCmd.Flags().StringVar(&configSetPath, "path", "", "config file to write (default: the loaded file, else .tasktrack/.tasktrack.yaml or ~/.tasktrack.yaml)")
}

// configView is the effective configuration as shown by `config show`.
type configView struct {
	ConfigFile string      `json:"configFile" yaml:"configFile"`
	Data       dataView    `json:"data" yaml:"data"`
	Logging    loggingView `json:"logging" yaml:"logging"`
}

type dataView struct {
	File         string `json:"file" yaml:"file"`
	ResolvedFile string `json:"resolvedFile" yaml:"resolvedFile"`
	Format       string `json:"format" yaml:"format"`
	Lock         bool   `json:"lock" yaml:"lock"`
}

type loggingView struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

func currentConfigView() configView {
	cfg := GetConfig()
	used := viper.ConfigFileUsed()
	if used == "" {
		used = "(none)"
	}
	format := cfg.Data.Format
	if format == "" {
		format = "(from extension)"
	}
	return configView{
		ConfigFile: used,
		Data: dataView{
			File:         cfg.Data.File,
			ResolvedFile: config.GetDataFilePath(),
			Format:       format,
			Lock:         cfg.Data.Lock,
		},
		Logging: loggingView{
			Level: cfg.Logging.Level,
			File:  cfg.Logging.File,
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	view := currentConfigView()
	if isJSON() {
		return printJSON(out, view)
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !viper.IsSet(key) && !isSettableKey(key) {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(config.SettableKeys(), ", "))
	}

	value := viper.Get(key)
	if key == config.KeyDataFile {
		value = config.GetDataFilePath()
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, configEntry{Key: key, Value: value})
	}
	fmt.Fprintln(out, value)
	return nil
}

func runConfigSet(cmd *cobra.Command, key, raw string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value, err := config.ParseValue(key, raw)
	if err != nil {
		return err
	}

	path := configSetPath
	if path == "" {
		path, err = config.WritableConfigFile()
		if err != nil {
			return err
		}
	}
	if err := config.SaveValue(path, key, value); err != nil {
		return err
	}
	viper.Set(key, value)

	out := cmd.OutOrStdout()
	switch {
	case isJSON():
		return printJSON(out, configEntry{Key: key, Value: value})
	case isQuiet():
	default:
		fmt.Fprintf(out, "✓ Set %s = %v in %s\n", key, value, path)
	}
	return nil
}

func isSettableKey(key string) bool {
	for _, k := range config.SettableKeys() {
		if k == key {
			return true
		}
	}
	return false
}
