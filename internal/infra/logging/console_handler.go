package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// ConsoleHandler renders records as single human-readable lines for a terminal.
// Records are dropped when the level configured for their logger name, or the
// closest dotted parent of it, is above the record level.
type ConsoleHandler struct {
	// Output receives one line per record
	Output io.Writer
	// Level is the minimum level for records without a package override
	Level slog.Leveler
	// PkgLevels maps logger names (or their dotted prefixes) to minimum levels
	PkgLevels map[string]slog.Level
	// Redact masks secret attribute values, see RedactAttr
	Redact bool
	// Color wraps level, time and values in ANSI escapes
	Color bool
	// Source appends the calling function and file position
	Source bool

	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*ConsoleHandler)(nil)

// Enabled implements slog.Handler.Enabled.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.Level == nil {
		return level >= slog.LevelInfo
	}

	return level >= h.Level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, rec slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.attrs)+rec.NumAttrs())
	attrs = append(attrs, h.attrs...)

	rec.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	if floor, ok := h.pkgLevel(loggerName(attrs)); ok && rec.Level < floor {
		return nil
	}

	var line strings.Builder

	line.WriteString(h.paint(ansiGray, rec.Time.Format("15:04:05.000")))
	line.WriteString(" ")
	line.WriteString(h.paint(levelColor(rec.Level), rec.Level.String()))
	line.WriteString(" ")
	line.WriteString(rec.Message)

	var prefix string
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}

	h.writeAttrs(&line, prefix, attrs)

	if h.Source && rec.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{rec.PC}).Next()
		line.WriteString(h.paint(ansiGray,
			" ("+filepath.Base(frame.Function)+" "+filepath.Base(frame.File)+":"+strconv.Itoa(frame.Line)+")"))
	}

	line.WriteString("\n")

	if h.mu != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
	}

	_, err := io.WriteString(h.Output, line.String())

	//nolint:wrapcheck
	return err
}

// WithAttrs implements slog.Handler.WithAttrs.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)

	return clone
}

// WithGroup implements slog.Handler.WithGroup.
func (h *ConsoleHandler) WithGroup(name string) Handler {
	if name == "" {
		return h
	}

	clone := h.clone()
	clone.groups = append(clone.groups, name)

	return clone
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	clone.groups = append([]string(nil), h.groups...)

	if clone.mu == nil {
		clone.mu = new(sync.Mutex)
	}

	return &clone
}

// pkgLevel walks from the full logger name up to the root ("") and returns the
// first configured level.
func (h *ConsoleHandler) pkgLevel(name string) (slog.Level, bool) {
	if len(h.PkgLevels) == 0 {
		return 0, false
	}

	for {
		if level, ok := h.PkgLevels[name]; ok {
			return level, true
		}

		if name == "" {
			return 0, false
		}

		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[:i]
		} else {
			name = ""
		}
	}
}

func (h *ConsoleHandler) writeAttrs(line *strings.Builder, prefix string, attrs []slog.Attr) {
	for _, attr := range attrs {
		if h.Redact {
			attr = RedactAttr(attr)
		}

		if attr.Value.Kind() == slog.KindGroup {
			h.writeAttrs(line, prefix+attr.Key+".", attr.Value.Group())

			continue
		}

		if attr.Key == "" {
			continue
		}

		line.WriteString(" ")
		line.WriteString(prefix + attr.Key)
		line.WriteString("=")
		line.WriteString(h.paint(ansiCyan, quote(attr.Value.Resolve().String())))
	}
}

func (h *ConsoleHandler) paint(code, s string) string {
	if !h.Color {
		return s
	}

	return code + s + ansiReset
}

func loggerName(attrs []slog.Attr) string {
	for _, attr := range attrs {
		if attr.Key == "logger" {
			return attr.Value.String()
		}
	}

	return ""
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiGray
	}
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}

	return s
}
