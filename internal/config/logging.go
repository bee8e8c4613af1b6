package config

import (
	"log/slog"
	"os"
)

// SetupLogging installs the default logger: a text handler on stderr at
// the configured level. Stderr keeps log lines out of command output that
// callers may pipe or parse.
func SetupLogging(s *Settings) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(s.LogLevel)})
	slog.SetDefault(slog.New(handler))
}

// Log logs the resolved settings that affect a run.
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	logger.Debug("Config: log_level", "value", s.LogLevel)
	logger.Debug("Config: no_color", "value", s.NoColor)
	if len(s.Exclude) > 0 {
		logger.Debug("Config: exclude", "patterns", s.Exclude)
	}
	logger.Debug("Config: watch.debounce", "value", s.Watch.Debounce)
	logger.Debug("Config: search.max_results", "value", s.Search.MaxResults)
}

func logLevel(name string) slog.Level {
	switch name {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
