package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/tasktrack/internal/config"
	"github.com/josephgoksu/tasktrack/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// configErr is the outcome of the last InitConfig. PersistentPreRunE
// returns it so configuration problems fail the command.
var configErr error

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: invalid value %q (%s)", strings.ToLower(fe.Namespace()), fe.Value(), fe.Tag()))
			}
			return fmt.Errorf("configuration validation error: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	configErr = loadConfig()
}

func loadConfig() error {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	bindPersistentFlags()
	viper.SetEnvPrefix(config.EnvPrefix)                   // e.g., TASKTRACK_DATA_FILE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // Replace dots with underscores in env var names
	viper.AutomaticEnv()

	viper.SetDefault(config.KeyDataFile, "")
	viper.SetDefault(config.KeyDataFormat, "")
	viper.SetDefault(config.KeyDataLock, false)
	viper.SetDefault(config.KeyLogLevel, config.DefaultLogLevel)
	viper.SetDefault(config.KeyLogFile, "")

	cfgFile := viper.GetString(config.KeyConfig)
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Project config (./.tasktrack/.tasktrack.yaml) wins over $HOME and the working directory.
		if info, err := os.Stat(config.DirName); err == nil && info.IsDir() {
			viper.AddConfigPath(config.DirName)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(config.ConfigName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config file %s: %w", viper.ConfigFileUsed(), err)
		}
		log.Debug().Msg("no config file found, using defaults and environment variables")
	} else {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}

	GlobalAppConfig = types.AppConfig{}
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return validateAppConfig(&GlobalAppConfig)
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
