// Package rwconfig provides configuration loading and validation for the
// asyncrewrite CLI.
package rwconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidDebugLevel = errors.New("invalid debug level")
	ErrInvalidOutput     = errors.New("invalid output destination")
)

// Default configuration values.
const (
	defaultDebugLevel = "none"
	defaultOutput     = "stdout"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
)

// Config holds all configuration for the asyncrewrite CLI.
type Config struct {
	Rewrite RewriteConfig `mapstructure:"rewrite"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RewriteConfig holds rewrite-specific configuration.
type RewriteConfig struct {
	// DebugLevel is one of "none", "types", "verbose" (rewrite.DebugLevel).
	// It is validated on load; the CLI's rewrite command takes its debug
	// level from --debug and does not read this field.
	DebugLevel string `mapstructure:"debug_level"`
	// Output is "stdout" or a file path. It is validated on load (it must not
	// be empty); the CLI's rewrite command takes its destination from
	// -o/--output and does not read this field.
	Output string `mapstructure:"output"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("asyncrewrite")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("/etc/asyncrewrite")
	}

	viperCfg.SetEnvPrefix("ASYNCREWRITE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	if err := viperCfg.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("rewrite.debug_level", defaultDebugLevel)
	viperCfg.SetDefault("rewrite.output", defaultOutput)
	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)
}

func validateConfig(config *Config) error {
	switch config.Rewrite.DebugLevel {
	case "none", "types", "verbose":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDebugLevel, config.Rewrite.DebugLevel)
	}

	if config.Rewrite.Output == "" {
		return fmt.Errorf("%w: empty", ErrInvalidOutput)
	}

	return nil
}
