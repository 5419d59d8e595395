// Package logger builds the process-wide slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/ckmirror/internal/env"
)

// Options holds logger construction options.
type Options struct {
	logToFile bool
	logFile   string
	level     slog.Level
}

// Option configures the logger.
type Option func(*Options)

// WithLogToFile enables mirroring log output to a rotated file.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the log file path used when file logging is enabled.
func WithLogFile(path string) Option {
	return func(o *Options) {
		o.logFile = path
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) {
		o.level = level
	}
}

// New creates a logger for the given environment.
// Development logs are colorized console output; production logs are JSON.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	options := &Options{
		logFile: "logs/ckmirror.log",
		level:   slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(options)
	}

	var w io.Writer = os.Stderr
	if options.logToFile {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   options.logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	if environment.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: options.level}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      options.level,
		TimeFormat: time.Kitchen,
	}))
}
