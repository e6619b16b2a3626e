package logger

import (
	"io"
	"os"
	"strings"

	"github.com/docdiff/docdiff/internal/config"
	"github.com/rs/zerolog"
)

// New creates a zerolog logger from the given log configuration. Output goes
// to stderr; the format selects between a human console writer and raw JSON.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	writer := createWriter(cfg.LogFormat)

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, nil
}

// parseLevel converts a config level string to a zerolog level. An empty
// string defaults to info.
func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

func createWriter(format string) io.Writer {
	switch strings.ToLower(format) {
	case "json":
		return os.Stderr
	default:
		return zerolog.ConsoleWriter{Out: os.Stderr}
	}
}
