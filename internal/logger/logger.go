package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process logger. It discards everything until Init runs.
var Logger = zerolog.Nop()

// New builds a logger writing to out. format is "json" or "console";
// anything else falls back to console.
func New(level, format string, out io.Writer) zerolog.Logger {
	var l zerolog.Logger
	if strings.EqualFold(format, "json") {
		l = zerolog.New(out).With().Timestamp().Caller().Logger()
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return l.Level(ParseLevel(level))
}

// Init builds the logger, installs it as Logger and as zerolog's global
// logger, and returns it. The API server logs to stdout; the CLI passes
// stderr so command output stays clean.
func Init(level, format string, out io.Writer) zerolog.Logger {
	Logger = New(level, format, out)
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = Logger
	return Logger
}

// ParseLevel maps a configured level name to a zerolog level.
// Unknown names mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "off":
		return zerolog.Disabled
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// GetLogger returns the configured logger instance
func GetLogger() zerolog.Logger {
	return Logger
}
