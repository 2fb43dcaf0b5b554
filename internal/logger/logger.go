// Package logger builds the gateway's zerolog logger. The logger is
// returned to the caller and injected where needed; there is no package
// global to mutate.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New constructs a logger writing to w with the given level and format.
// Format "console" is for local development; anything else gets JSON
// lines tagged with the service name for log aggregation.
func New(w io.Writer, level, format string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLogLevel(level))

	var logger zerolog.Logger
	if strings.ToLower(format) == "console" {
		output := zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
		logger = zerolog.New(output).With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(w).With().
			Timestamp().
			Str("service", "lenshub-gateway").
			Logger()
	}

	// Keep the global logger in sync for any stray log.Print-style calls
	log.Logger = logger

	return logger
}

// parseLogLevel parses string log level to zerolog level
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
