// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	App       AppConfig       `mapstructure:"app"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// DiscoveryConfig represents device discovery configuration
type DiscoveryConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name string `mapstructure:"name"`
}

// EnvPrefix is the prefix of environment variable overrides, e.g. LSSERIAL_LOGGING_LEVEL
const EnvPrefix = "LSSERIAL"

// DefaultConfigPaths are searched for lsserial.yaml when no paths are given
var DefaultConfigPaths = []string{".", "/etc/lsserial"}

// Load loads configuration from an optional file and environment variables.
// A missing config file is not an error.
func Load(configPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("lsserial")
	v.SetConfigType("yaml")

	if len(configPaths) == 0 {
		configPaths = DefaultConfigPaths
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	// Environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Logging defaults, stdout is reserved for serial output
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// Discovery defaults
	v.SetDefault("discovery.timeout", "10s")

	// App defaults
	v.SetDefault("app.name", "lsserial")
}

// validate validates the configuration
func validate(config *Config) error {
	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	validFormats := []string{"json", "console"}
	if !contains(validFormats, config.Logging.Format) {
		return fmt.Errorf("logging.format must be one of: %v", validFormats)
	}

	// stdout carries the serial lines only
	if config.Logging.Output == "stdout" {
		return fmt.Errorf("logging.output cannot be stdout, use stderr or a file path")
	}

	if config.Discovery.Timeout <= 0 {
		return fmt.Errorf("discovery.timeout must be positive, got %s", config.Discovery.Timeout)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
