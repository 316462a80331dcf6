// Package config provides configuration loading for the expense tracker.
package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/common"
	"github.com/Veraticus/expense-tracker/internal/storage"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyStoragePath = "storage.path"
	KeyLogLevel    = "logging.level"
	KeyLogFormat   = "logging.format"
)

// Config is the resolved runtime configuration.
type Config struct {
	StoragePath string
	LogLevel    string
	LogFormat   string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		StoragePath: storage.DefaultFileName,
		LogLevel:    "warn",
		LogFormat:   "console",
	}
}

// SetDefaults registers DefaultConfig with v.
func SetDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault(KeyStoragePath, defaults.StoragePath)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)
}

// EnvPrefix is the prefix of environment variables read by BindEnv.
const EnvPrefix = "EXPENSE"

// BindEnv makes v read EXPENSE_* variables, mapping storage.path to
// EXPENSE_STORAGE_PATH.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from v (config file, EXPENSE_* environment
// variables and bound flags, in viper's usual precedence) and validates it.
func Load(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()

	if s := strings.TrimSpace(v.GetString(KeyStoragePath)); s != "" {
		config.StoragePath = ExpandPath(s)
	}
	if s := v.GetString(KeyLogLevel); s != "" {
		config.LogLevel = s
	}
	if s := v.GetString(KeyLogFormat); s != "" {
		config.LogFormat = s
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StoragePath) == "" {
		return fmt.Errorf("%w: storage path is required", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
