// Package config loads settings shared by the inspect2compose binaries.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/artpar/inspect2compose/internal/core/compose"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. INSPECT2COMPOSE_LOG_LEVEL.
const EnvPrefix = "INSPECT2COMPOSE"

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Compose ComposeConfig `mapstructure:"compose"`
	Docker  DockerConfig  `mapstructure:"docker"`

	// Warnings collects problems that did not stop loading, such as a named
	// config file that could not be read. Callers log them once a logger exists.
	Warnings []string `mapstructure:"-"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ComposeConfig holds rendering configuration.
type ComposeConfig struct {
	// Version is written to the top-level version key.
	Version string `mapstructure:"version"`

	// EmptyLists is "header" (bare key, the reference output) or
	// "flow" (explicit [] and {}).
	EmptyLists string `mapstructure:"empty_lists"`
}

// RenderOptions converts the compose section into renderer options.
func (c ComposeConfig) RenderOptions() (compose.Options, error) {
	style, err := compose.ParseListStyle(c.EmptyLists)
	if err != nil {
		return compose.Options{}, err
	}
	return compose.Options{
		Version:    c.Version,
		EmptyLists: style,
	}, nil
}

// DockerConfig holds Docker client configuration.
type DockerConfig struct {
	Host string `mapstructure:"host"`
}

// =============================================================================
// Config Loading
// =============================================================================

// Load loads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("compose.version", compose.DefaultVersion)
	v.SetDefault("compose.empty_lists", string(compose.ListStyleHeader))
	v.SetDefault("docker.host", "")

	// Load from file if provided
	var warnings []string
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only a file that exists but does not parse is an error
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			warnings = append(warnings, fmt.Sprintf("config file %s not read, using defaults: %v", configPath, err))
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Warnings = warnings

	if _, err := cfg.Compose.RenderOptions(); err != nil {
		return nil, fmt.Errorf("invalid compose settings: %w", err)
	}
	if strings.TrimSpace(cfg.Compose.Version) == "" {
		return nil, fmt.Errorf("invalid compose settings: compose.version must not be empty")
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
// Logs go to w; stdout is reserved for the rendered document.
func SetupLogger(cfg *Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
