// Package config loads the tool's configuration from
// ~/.thingsctl/config.yaml, with THINGSCTL_* environment variables
// overriding file values.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thingsctl/thingsctl/thingsctl"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		// Path to the task database. Empty means auto-discover.
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	Output struct {
		Format string `mapstructure:"format"` // "pretty" or "json"
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`

	Log struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"log"`
}

// Dir returns the configuration directory, ~/.thingsctl.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".thingsctl"
	}
	return filepath.Join(home, ".thingsctl")
}

// Load reads the config file and environment. A missing file is not
// an error; defaults apply.
func Load() (*Config, error) {
	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, thingsctl.ConfigError("could not read config file", err)
		}
		slog.Debug("no config file found, using defaults")
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	viper.SetEnvPrefix("THINGSCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, thingsctl.ConfigError("could not parse config", err)
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("database.path", "")
	viper.SetDefault("output.format", "pretty")
	viper.SetDefault("output.color", true)
	viper.SetDefault("log.level", "error")
}

// LogLevel maps the configured level name onto a slog level.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
