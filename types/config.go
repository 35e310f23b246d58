/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	JSON    bool          `mapstructure:"json"`
	Quiet   bool          `mapstructure:"quiet"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// File is the task document path. Empty means "resolve the default location".
	File string `mapstructure:"file"`
	// Format is json, yaml or toml. Empty infers it from the file extension.
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml yml toml"`
	// Lock serializes writes from concurrent tasktrack processes with a lock file.
	Lock bool `mapstructure:"lock"`
}

// LoggingConfig controls the diagnostic logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error disabled"`
	// File optionally mirrors log output into a file.
	File string `mapstructure:"file"`
}
