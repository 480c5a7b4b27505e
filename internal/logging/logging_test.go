package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/KimNorgaard/go-waml/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestLoggerDisabled(t *testing.T) {
	var l logging.Logger
	require.False(t, l.Enabled(slog.LevelError))
	l.Log(slog.LevelError, "dropped")

	require.Nil(t, logging.New(nil, "x").L)
}

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := logging.New(base, "registry")

	l.Log(slog.LevelDebug, "resolved", slog.String("type", "int"))
	require.Contains(t, buf.String(), "component=registry")
	require.Contains(t, buf.String(), "msg=resolved")
	require.Contains(t, buf.String(), "type=int")
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	l := logging.New(base, "decoder")

	require.False(t, l.Enabled(slog.LevelDebug))
	l.Log(slog.LevelDebug, "chunk")
	require.Empty(t, buf.String())
}
