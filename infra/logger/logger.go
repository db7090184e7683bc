package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	corelogger "github.com/kilianp07/trafficwatch/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Infow(string, map[string]any)  {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// Options selects where and how log entries are written.
type Options struct {
	// Level is a zerolog level name such as "debug" or "warn".
	Level string
	// Format is "json" or "console". APP_ENV=dev forces console.
	Format string
	// File, when set, sends entries to a rotating file instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	output io.Writer = os.Stderr
	level            = zerolog.InfoLevel
	format           = "json"
	closer io.Closer
)

// Configure applies opts to every logger created afterwards. It returns a
// function releasing the log file, if any.
func Configure(opts Options) (func() error, error) {
	lvl := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	var w io.Writer = os.Stderr
	var c io.Closer
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		w, c = lj, lj
	}
	SetOutput(w, lvl, opts.Format)
	mu.Lock()
	closer = c
	mu.Unlock()
	return func() error {
		mu.Lock()
		defer mu.Unlock()
		if closer == nil {
			return nil
		}
		err := closer.Close()
		closer = nil
		return err
	}, nil
}

// SetOutput redirects loggers created afterwards to w.
func SetOutput(w io.Writer, lvl zerolog.Level, f string) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	level = lvl
	if f != "" {
		format = strings.ToLower(f)
	}
}

// New returns a Logger for the given component.
func New(component string) Logger {
	return NewZerologLogger(component)
}
