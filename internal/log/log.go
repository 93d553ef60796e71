// Package log writes the diagnostics log. The terminal belongs to the UI, so
// nothing is ever written to stdout or stderr from here.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/wps/internal/model"
)

var (
	diagLog  = zerolog.Nop()
	diagFile *os.File
	logMu    sync.Mutex
)

// ParseLevel validates a level name. Empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Init opens logPath for appending and routes every helper to it.
func Init(logPath, level string) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if diagFile != nil {
		_ = diagFile.Close()
	}
	diagFile = f

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).Level(lvl).With().Timestamp().Int("pid", os.Getpid()).Logger()
	return nil
}

// Close closes the log file and makes the helpers no-ops again.
func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		_ = diagFile.Close()
		diagFile = nil
	}
	diagLog = zerolog.Nop()
}

func logger() *zerolog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	l := diagLog
	return &l
}

// Warnf logs a formatted warning.
func Warnf(format string, args ...any) {
	logger().Warn().Msg(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error.
func Errorf(format string, args ...any) {
	logger().Error().Msg(fmt.Sprintf(format, args...))
}

// SessionStart records the resolved configuration of a run.
func SessionStart(cfg model.Config, corpusLines int, frontend string) {
	logger().Info().
		Str("frontend", frontend).
		Str("text", cfg.TextPath).
		Int("lines", corpusLines).
		Int("countdown", cfg.Countdown).
		Str("placeholder", string(cfg.Placeholder)).
		Msg("session_start")
}

// RoundFinished records a completed round.
func RoundFinished(res model.RoundResult) {
	logger().Info().
		Int("round", res.Round).
		Int("wpm", res.WPM).
		Int("chars", res.Chars).
		Int64("duration_ms", res.DurationMs).
		Msg("round_finished")
}

// Restart records an abandoned round at debug level.
func Restart(round int) {
	logger().Debug().Int("round", round).Msg("restart")
}
