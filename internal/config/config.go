// Package config loads mdc settings from flags, environment variables,
// and an optional .mdcombine.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Log level names accepted by the log_level setting.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// WatchSettings configuration for watch mode
type WatchSettings struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// SearchSettings configuration for document search
type SearchSettings struct {
	MaxResults int `mapstructure:"max_results"`
}

// Settings application settings
type Settings struct {
	Exclude  []string       `mapstructure:"exclude"`
	LogLevel string         `mapstructure:"log_level"`
	NoColor  bool           `mapstructure:"no_color"`
	Watch    WatchSettings  `mapstructure:"watch"`
	Search   SearchSettings `mapstructure:"search"`
}

// LoadSettings loads settings from environment variables and an optional
// .mdcombine.yaml file.
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > config file > defaults.
// If flags is nil, only env vars, the config file, and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("log_level", LogLevelInfo)
	v.SetDefault("no_color", false)
	v.SetDefault("watch.debounce", 500*time.Millisecond)
	v.SetDefault("search.max_results", 10)

	// Environment variables
	v.SetEnvPrefix("MDC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("exclude", "MDC_EXCLUDE")
	_ = v.BindEnv("log_level", "MDC_LOG_LEVEL")
	_ = v.BindEnv("no_color", "MDC_NO_COLOR")
	_ = v.BindEnv("watch.debounce", "MDC_WATCH_DEBOUNCE")
	_ = v.BindEnv("search.max_results", "MDC_SEARCH_MAX_RESULTS")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		bindFlag(v, flags, "exclude", "exclude")
		bindFlag(v, flags, "log_level", "log-level")
		bindFlag(v, flags, "no_color", "no-color")
		bindFlag(v, flags, "watch.debounce", "debounce")
		bindFlag(v, flags, "search.max_results", "limit")
	}

	// Optional project config file in the working directory
	v.SetConfigName(".mdcombine")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .mdcombine.yaml doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle comma-separated exclude globs from the env var form
	excludeEnv := os.Getenv("MDC_EXCLUDE")
	if excludeEnv != "" {
		if len(settings.Exclude) == 0 || (len(settings.Exclude) == 1 && strings.Contains(settings.Exclude[0], ",")) {
			settings.Exclude = strings.Split(excludeEnv, ",")
		}
	}
	for i := range settings.Exclude {
		settings.Exclude[i] = strings.TrimSpace(settings.Exclude[i])
	}
	settings.Exclude = filterEmptyStrings(settings.Exclude)

	return &settings, nil
}

// bindFlag binds one settings key to a flag when the flag is defined.
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, flag string) {
	if f := flags.Lookup(flag); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ValidateSettings checks the resolved settings for values the tool
// cannot run with.
func ValidateSettings(s *Settings) error {
	switch s.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
		// valid
	default:
		return errors.New("log_level must be one of debug, info, warn, error, got: " + s.LogLevel)
	}

	for _, glob := range s.Exclude {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("invalid exclude pattern: %q", glob)
		}
	}

	if s.Watch.Debounce <= 0 {
		return errors.New("watch.debounce must be positive")
	}

	if s.Search.MaxResults <= 0 {
		return errors.New("search.max_results must be positive")
	}

	return nil
}
