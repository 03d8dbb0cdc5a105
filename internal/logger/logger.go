// Package logger configures the application-wide structured logger.
// Access logs are handled separately by the Echo request logger.
package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Log is the global logger. It defaults to info level so packages can
// log before InitFromEnv runs.
var Log = New("info")

// InitFromEnv reads the log level from the given environment variable
// and replaces the global logger. Empty or unknown values mean info.
func InitFromEnv(envKey string) {
	level := strings.ToLower(os.Getenv(envKey))
	if level == "" {
		level = "info"
	}
	Log = New(level)
}

// New builds a gookit/slog console logger emitting at the given level
// and below.
func New(level string) *slog.Logger {
	logLevel := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	return slog.NewWithHandlers(h)
}
