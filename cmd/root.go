/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/josephgoksu/tasktrack/internal/config"
	"github.com/josephgoksu/tasktrack/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// ErrNoTasksFound is returned when an interactive selection is attempted but no tasks are available.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version, overridden at build time via -ldflags.
	version = "1.0.0"
	// closeLog releases the log file opened by PersistentPreRunE.
	closeLog = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tasktrack",
	Short: "tasktrack - a local command-line task tracker",
	Long: `tasktrack is a local command-line task tracker. It keeps a personal
task list in a single file on disk.

Create, list, filter, update and complete tasks from the command line, or
run "tasktrack interactive" for a guided menu. Task IDs may be shortened to
any unique prefix.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}

		cfg := GetConfig()
		_, closeFn, err := logger.Setup(logger.Options{
			Level:   cfg.Logging.Level,
			Verbose: cfg.Verbose,
			File:    cfg.Logging.File,
			Out:     cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		closeLog = closeFn

		logger.SetVersion(version)
		logger.SetCommand(cmd.CommandPath(), args)
		logger.SetDataFile(config.GetDataFilePath())
		logger.SetBasePath(config.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(ReportError(rootCmd.ErrOrStderr(), err))
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	cobra.OnInitialize(InitConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is ./.tasktrack/.tasktrack.yaml or $HOME/.tasktrack.yaml)")
	flags.StringP("file", "f", "", "task data file (default is ./.tasktrack/tasks.json, $XDG_DATA_HOME/tasktrack/tasks.json or ~/.tasktrack/tasks.json)")
	flags.String("format", "", "task data format: json, yaml or toml (default inferred from the file extension)")
	flags.Bool("json", false, "print machine-readable JSON")
	flags.BoolP("quiet", "q", false, "only print essential output")
	flags.BoolP("verbose", "v", false, "enable verbose output")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error or disabled")
}

// persistentFlagKeys maps persistent flags to their viper keys.
var persistentFlagKeys = map[string]string{
	"config":    config.KeyConfig,
	"file":      config.KeyDataFile,
	"format":    config.KeyDataFormat,
	"json":      config.KeyJSON,
	"quiet":     config.KeyQuiet,
	"verbose":   config.KeyVerbose,
	"log-level": config.KeyLogLevel,
}

// bindPersistentFlags binds the persistent flags to Viper. It runs on every
// initialization so a viper.Reset between executions keeps the bindings.
func bindPersistentFlags() {
	for name, key := range persistentFlagKeys {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
}
