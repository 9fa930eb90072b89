// Package logging provides the process-wide structured logger: slog with a
// compact colorized text handler. The extraction core stays silent; logging
// happens at the I/O boundary and in the CLI.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
)

var (
	debugEnabled bool

	infoColor  = color.New(color.FgGreen).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
	debugColor = color.New(color.FgCyan).SprintFunc()
)

// textHandler writes one colorized line per record.
type textHandler struct {
	w io.Writer
}

// Enabled reports whether records at level are logged.
func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	if debugEnabled {
		return level >= slog.LevelDebug
	}
	return level >= slog.LevelInfo
}

// Handle formats and writes one record.
func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	var levelText string
	switch r.Level {
	case slog.LevelDebug:
		levelText = debugColor("DEBUG")
	case slog.LevelInfo:
		levelText = infoColor("INFO")
	case slog.LevelWarn:
		levelText = warnColor("WARN")
	case slog.LevelError:
		levelText = errorColor("ERROR")
	default:
		levelText = r.Level.String()
	}

	attrs := ""
	r.Attrs(func(a slog.Attr) bool {
		attrs += " " + a.Key + "=" + a.Value.String()
		return true
	})

	_, err := fmt.Fprintf(h.w, "%s %s%s\n", levelText, r.Message, attrs)
	return err
}

// WithAttrs is a no-op for this handler.
func (h *textHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup is a no-op for this handler.
func (h *textHandler) WithGroup(string) slog.Handler { return h }

// Init installs the logger on stderr. Debug enables per-stage trace
// output.
func Init(debug bool) {
	debugEnabled = debug
	slog.SetDefault(slog.New(&textHandler{w: os.Stderr}))
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	slog.SetDefault(slog.New(&textHandler{w: w}))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

// Info logs an info message.
func Info(msg string, args ...any) { slog.Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { slog.Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { slog.Error(msg, args...) }
