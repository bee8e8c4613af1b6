package config

import (
	"log/slog"
	"testing"
)

func TestLogLevel_Mapping(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{name: LogLevelDebug, want: slog.LevelDebug},
		{name: LogLevelInfo, want: slog.LevelInfo},
		{name: LogLevelWarn, want: slog.LevelWarn},
		{name: LogLevelError, want: slog.LevelError},
		{name: "", want: slog.LevelInfo},
		{name: "unknown", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := logLevel(tt.name); got != tt.want {
			t.Errorf("logLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLogWithLogger_DoesNotPanic(t *testing.T) {
	s := &Settings{LogLevel: LogLevelDebug, Exclude: []string{"**/drafts/**"}}
	LogWithLogger(s, slog.Default())
}
