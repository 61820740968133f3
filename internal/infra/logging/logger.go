// Package logging builds the process logger.
// Records go to stderr and to a size-rotated debug log file.
package logging

import (
	"io"
	"log/slog"

	"github.com/chainguard-dev/clog"
	"github.com/tawada/grass-grower/internal/domain"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger owns the handler chain and the rotating file sink.
// Fields are ordered to minimize memory padding.
type Logger struct {
	*clog.Logger
	file io.WriteCloser
}

// New creates a Logger writing to stderr and, if cfg.File is set, to a rotating file.
func New(cfg domain.LogConfig, stderr io.Writer) *Logger {
	var (
		w    io.Writer = stderr
		file io.WriteCloser
	)
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  cfg.MaxSizeMB,
			MaxAge:   cfg.MaxAgeDays,
		}
		w = io.MultiWriter(stderr, file)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})
	return &Logger{
		Logger: clog.New(handler),
		file:   file,
	}
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
