// Package logging configures the global zerolog logger for the binaries.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSize    = 10
	defaultMaxBackups = 3
	defaultMaxAge     = 28
)

// Options controls where and how much is logged
type Options struct {
	Level string
	// File is an optional path of a rotated log file
	File    string
	Console bool
}

// Setup installs the global logger and returns the writer it uses.
// An unknown level falls back to info.
func Setup(opts Options) io.Writer {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	w := out
	if opts.File != "" {
		w = zerolog.MultiLevelWriter(out, FileWriter(opts.File))
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return w
}

// FileWriter returns a size-rotated writer for path
func FileWriter(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultMaxSize,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAge,
		Compress:   true,
	}
}
