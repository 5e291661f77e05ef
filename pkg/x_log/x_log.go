// Package x_log provides a zerolog based logger with lipgloss styled console
// output and optional rotating file output.
package x_log

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var ErrInvalidLevelValue = errors.New("invalid_level_value")

type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel

	DefaultModule = "fpmine"
)

var (
	mu     sync.RWMutex
	base   = zerolog.New(os.Stderr).With().Timestamp().Logger()
	root   = base.With().Str("module", DefaultModule).Logger()
	closer io.Closer
)

//---------------------
// Initialization
//---------------------

// Init configures the global logger from LoadConfig("").
func Init() {
	cfg, err := LoadConfig("")
	if err != nil {
		d := defaultConfig
		cfg = &d
	}
	InitWithConfig(cfg, DefaultModule)
}

// InitWithConfig configures the global logger. module tags every line
// written through the package level helpers.
func InitWithConfig(cfg *Config, module string) {
	c := *cfg
	ApplyDefaults(&c)
	if module == "" {
		module = DefaultModule
	}

	level, err := ParseLevel(c.Level)
	if err != nil {
		level = InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	w, cl := buildWriter(&c)

	mu.Lock()
	if closer != nil {
		_ = closer.Close()
	}
	closer = cl
	base = zerolog.New(w).With().Timestamp().Logger()
	root = base.With().Str("module", module).Logger()
	log.Logger = root
	mu.Unlock()
}

// buildWriter assembles console and file outputs.
func buildWriter(c *Config) (io.Writer, io.Closer) {
	var (
		writers []io.Writer
		cl      io.Closer
	)

	if c.ToFile && c.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		}
		cl = lj
		if c.ColoredFile {
			styles := DefaultStylesByName(c.Style)
			styles.Out = lj
			writers = append(writers, ConsoleWriterWithStyles(styles))
		} else {
			writers = append(writers, lj)
		}
	}

	if c.ToConsole || len(writers) == 0 {
		if strings.EqualFold(c.Format, "json") {
			writers = append(writers, os.Stderr)
		} else {
			styles := DefaultStylesByName(c.Style)
			styles.Out = os.Stderr
			cw := ConsoleWriterWithStyles(styles)
			cw.NoColor = !IsTerminal(os.Stderr)
			writers = append(writers, cw)
		}
	}

	if len(writers) == 1 {
		return writers[0], cl
	}
	return zerolog.MultiLevelWriter(writers...), cl
}

// Close flushes and closes the rotating file output, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

//---------------------
// Loggers
//---------------------

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, ErrInvalidLevelValue
	}
}

// New returns a logger scoped to module.
func New(module string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("module", module).Logger()
}

// L returns the global logger.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := root
	return &l
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// From returns the logger stored in ctx, or the global logger.
func From(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return L()
}

//---------------------
// Package level events
//---------------------

func Debug() *zerolog.Event { return L().Debug() }
func Info() *zerolog.Event  { return L().Info() }
func Warn() *zerolog.Event  { return L().Warn() }
func Error() *zerolog.Event { return L().Error() }
func Fatal() *zerolog.Event { return L().Fatal() }
