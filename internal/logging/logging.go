// Package logging configures the zerolog loggers of the keepmatch command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const appName = "keepmatch"

// Level maps a -v count to a zerolog level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger to write human-readable output
// to console and JSON lines to the log file. A nil console means stderr.
func SetupLogger(verbosity int, console io.Writer) {
	zerolog.SetGlobalLevel(Level(verbosity))
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}}

	logFile := LogFilePath()
	f, err := openLogFile(logFile)
	if err == nil {
		writers = append(writers, f)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

// LogFilePath returns the log file location under the XDG state directory.
// XDG_STATE_HOME is read again on every call.
func LogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	return filepath.Join(stateHome, appName, appName+".log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
