// Package logger wraps zerolog behind a small structured-logging API.
//
// sqlframe is a library, so it stays silent by default: the Manager uses
// Nop() unless the caller injects a real logger via sqlframe.WithLogger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper over zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json, console
	Output io.Writer // defaults to os.Stdout
}

// DefaultConfig returns production-ready defaults (info-level JSON to stdout).
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: os.Stdout,
	}
}

// New creates a Logger from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Format == "console" {
		// Human-readable output for development.
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	} else {
		// Structured JSON for production.
		zl = zerolog.New(out)
	}
	zl = zl.Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With starts a child-logger field chain.
func (l *Logger) With() *Context {
	return &Context{zc: l.zl.With()}
}

// Context accumulates fields for a child logger.
type Context struct {
	zc zerolog.Context
}

func (c *Context) Str(key, val string) *Context {
	c.zc = c.zc.Str(key, val)
	return c
}

func (c *Context) Int(key string, val int) *Context {
	c.zc = c.zc.Int(key, val)
	return c
}

func (c *Context) Bool(key string, val bool) *Context {
	c.zc = c.zc.Bool(key, val)
	return c
}

func (c *Context) Any(key string, val any) *Context {
	c.zc = c.zc.Interface(key, val)
	return c
}

func (c *Context) Logger() *Logger {
	return &Logger{zl: c.zc.Logger()}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *Logger) Debugf(format string, args ...any) { l.zl.Debug().Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.zl.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.zl.Warn().Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.zl.Error().Msgf(format, args...) }

// ErrorWith logs msg at error level with the error attached as a field.
func (l *Logger) ErrorWith(msg string, err error) {
	l.zl.Error().Err(err).Msg(msg)
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
