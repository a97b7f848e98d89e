package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Constants for log levels that match slog.Level values.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Type aliases for commonly used slog types.
type (
	Logger  = *slog.Logger
	Handler = slog.Handler
	Level   = slog.Level
)

// LoggerConfig holds configuration parameters for logging.
type LoggerConfig struct {
	// Output is "stdout", "stderr", "discard" or a file path
	Output string `env:"OUTPUT" default:"stderr"`

	// Level is the global minimum level ("debug", "info", "warn", "error")
	Level string `env:"LEVEL" default:"warn"`

	// Filter overrides the level per logger name ("remote:debug,infra.transport:info")
	Filter string `env:"FILTER" default:""`

	// JSON switches from console lines to slog's JSON encoding
	JSON bool `env:"JSON" default:"false"`

	// Color forces ANSI colors on or off, "auto" enables them for terminals only
	Color string `env:"COLOR" default:"auto"`

	// Source adds the caller position to every record
	Source bool `env:"SOURCE" default:"false"`

	// Redact masks session tokens, passwords and other secrets in log attributes
	Redact bool `env:"REDACT" default:"true"`

	// OutputHandle takes precedence over Output when set
	OutputHandle io.Writer
}

//nolint:gochecknoglobals
var (
	Group = slog.Group

	state struct {
		sync.RWMutex

		appName string
		cfg     LoggerConfig
		out     io.Writer
		level   *slog.LevelVar
		pkgs    map[string]slog.Level
	}
)

// Configure installs cfg as the configuration for loggers returned by GetLogger
// from now on. Loggers obtained earlier keep their handler.
func Configure(ctx context.Context, cfg LoggerConfig, appName string) {
	out, err := openOutput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v, falling back to stderr\n", err)

		out = os.Stderr
	}

	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Level, LevelWarn))

	state.Lock()
	state.appName = appName
	state.cfg = cfg
	state.out = out
	state.level = level
	state.pkgs = ParseFilter(cfg.Filter)
	state.Unlock()

	GetLogger("infra.logging").DebugContext(ctx, "logging configured",
		Group("config",
			"output", cfg.Output,
			"level", level.Level().String(),
			"filter", cfg.Filter,
			"json", cfg.JSON,
			"redact", cfg.Redact,
		),
	)
}

// GetLogger returns a logger tagged with name. Before Configure is called, or when
// the output is "discard", the logger drops everything.
func GetLogger(name string) Logger {
	state.RLock()
	defer state.RUnlock()

	if state.out == nil || state.out == io.Discard {
		return NewNopLogger()
	}

	logger := slog.New(NewTracingHandler(newHandler(state.cfg, state.out, state.level, state.pkgs)))

	if state.appName != "" {
		logger = logger.With("app", state.appName)
	}

	return logger.With("logger", name)
}

func newHandler(cfg LoggerConfig, out io.Writer, level slog.Leveler, pkgs map[string]slog.Level) Handler {
	if cfg.JSON {
		//nolint:exhaustruct
		opts := &slog.HandlerOptions{
			AddSource: cfg.Source,
			Level:     level,
		}

		if cfg.Redact {
			opts.ReplaceAttr = func(_ []string, attr slog.Attr) slog.Attr {
				return RedactAttr(attr)
			}
		}

		return slog.NewJSONHandler(out, opts)
	}

	//nolint:exhaustruct
	return &ConsoleHandler{
		Output:    out,
		Level:     level,
		PkgLevels: pkgs,
		Redact:    cfg.Redact,
		Color:     useColor(cfg.Color, out),
		Source:    cfg.Source,
	}
}

func openOutput(cfg LoggerConfig) (io.Writer, error) {
	if cfg.OutputHandle != nil {
		return cfg.OutputHandle, nil
	}

	switch cfg.Output {
	case "", "discard":
		return io.Discard, nil
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return file, nil
}

func useColor(mode string, out io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always", "true", "on":
		return true
	case "never", "false", "off":
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// ParseFilter reads "name:level" pairs separated by commas. Malformed pairs are skipped
// and an unknown level name means debug.
func ParseFilter(filter string) map[string]slog.Level {
	levels := make(map[string]slog.Level)

	for _, pair := range strings.Split(filter, ",") {
		name, level, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}

		levels[strings.TrimSpace(name)] = ParseLevel(level, LevelDebug)
	}

	return levels
}

// ParseLevel maps a level name to its slog.Level, returning fallback for unknown names.
func ParseLevel(name string, fallback Level) Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return fallback
	}

	return level
}

// NewNopLogger creates a logger that discards all output.
func NewNopLogger() Logger {
	return slog.New(slog.DiscardHandler)
}
