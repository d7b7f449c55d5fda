// Package logging configures the process logger and hands out
// component-scoped child loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Component names used across the runtime.
const (
	CompRuntime  = "runtime"
	CompWatch    = "watch"
	CompFocus    = "focus"
	CompTransfer = "transfer"
	CompShell    = "shell"
)

// Options controls logger output.
type Options struct {
	Level string // debug, info, warn, error
	File  string // empty logs to stderr
	Debug bool   // forces debug level
}

var (
	mu     sync.RWMutex
	base   = newConsoleLogger(os.Stderr)
	output io.Closer
)

func newConsoleLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)
}

// Init replaces the process logger. Loggers obtained from ForComponent
// before Init keep their old configuration.
func Init(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	var closer io.Closer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logger = zerolog.New(f).With().Timestamp().Logger()
		closer = f
	} else {
		logger = newConsoleLogger(os.Stderr)
	}

	mu.Lock()
	defer mu.Unlock()
	if output != nil {
		_ = output.Close()
	}
	base = logger.Level(level)
	output = closer
	return nil
}

// ForComponent returns a child logger tagged with the component name.
func ForComponent(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if output == nil {
		return nil
	}
	err := output.Close()
	output = nil
	base = newConsoleLogger(os.Stderr)
	return err
}
