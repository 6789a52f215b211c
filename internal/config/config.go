// Package config loads the settings of the command line tools from an
// optional YAML file and HASHCHAIN_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Prover  ProverConfig  `mapstructure:"prover"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ProverConfig struct {
	// Capacity is the largest step_num + 1 the generated parameters accept.
	Capacity  int  `mapstructure:"capacity"`
	SelfCheck bool `mapstructure:"self_check"`
	Progress  bool `mapstructure:"progress"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// Load reads configPath if it is not empty. HASHCHAIN_PROVER_CAPACITY
// overrides prover.capacity and so on.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HASHCHAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("prover.capacity", 32)
	v.SetDefault("prover.self_check", true)
	v.SetDefault("prover.progress", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func (c *Config) Validate() error {
	if c.Prover.Capacity < 1 || c.Prover.Capacity > 1<<12 {
		return fmt.Errorf("capacity must be between 1 and %d, got %d", 1<<12, c.Prover.Capacity)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}
	return nil
}

// Logger builds the logger described by the logging section, writing to stderr.
func (c *Config) Logger() zerolog.Logger {
	return c.newLogger(os.Stderr)
}

func (c *Config) newLogger(w io.Writer) zerolog.Logger {
	level, _ := zerolog.ParseLevel(c.Logging.Level)
	if c.Logging.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
