// Package logging carries an optional *slog.Logger through components.
package logging

import (
	"context"
	"log/slog"
)

// Logger logs through L when it is set. The zero Logger discards
// everything.
type Logger struct {
	L *slog.Logger
}

// New returns a Logger for l tagged with component. A nil l disables
// logging.
func New(l *slog.Logger, component string) Logger {
	if l == nil {
		return Logger{}
	}
	return Logger{L: l.With(slog.String("component", component))}
}

// Enabled reports whether records at level would be emitted.
func (l Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(context.Background(), level)
}

// Log emits a record at level.
func (l Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if !l.Enabled(level) {
		return
	}
	l.L.LogAttrs(context.Background(), level, msg, attrs...)
}
