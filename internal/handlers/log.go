package handlers

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pocketbase/pocketbase"
)

var log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// InitLogger replaces the package logger with a JSON console logger at the given level.
func InitLogger(app *pocketbase.PocketBase, level string) {
	consoleHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	log = slog.New(consoleHandler)

	log.Info("Custom log initialized", "level", ParseLevel(level).String(), "dataDir", app.DataDir())
}

// SetLogger swaps the package logger, mostly for tests.
func SetLogger(l *slog.Logger) {
	if l != nil {
		log = l
	}
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogInfo message
func LogInfo(msg string, attrs ...interface{}) {
	log.Info(msg, attrs...)
}

// LogWarn message
func LogWarn(msg string, attrs ...interface{}) {
	log.Warn(msg, attrs...)
}

// LogError message
func LogError(err error, msg string, attrs ...interface{}) {
	attrs = append(attrs, "error", err)
	log.Error(msg, attrs...)
}

// LogDebug message
func LogDebug(msg string, attrs ...interface{}) {
	log.Debug(msg, attrs...)
}

// LogWith attributes message
func LogWith(attrs ...interface{}) *slog.Logger {
	return log.With(attrs...)
}

// LogWithGroup by name message
func LogWithGroup(name string) *slog.Logger {
	return log.WithGroup(name)
}
