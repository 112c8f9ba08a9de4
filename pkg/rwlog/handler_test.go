package rwlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-labs/asyncrewrite/pkg/rwlog"
)

func TestPhaseHandlerStampsPhaseAttribute(t *testing.T) {
	var buf bytes.Buffer

	inner := slog.NewTextHandler(&buf, nil)
	handler := rwlog.NewPhaseHandler(inner, rwlog.PhaseParse)
	logger := slog.New(handler)

	logger.Info("hello")

	assert.Contains(t, buf.String(), "phase=parse")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestPhaseHandlerWithAttrsKeepsPhase(t *testing.T) {
	var buf bytes.Buffer

	inner := slog.NewTextHandler(&buf, nil)
	handler := rwlog.NewPhaseHandler(inner, rwlog.PhaseEmit)
	logger := slog.New(handler).With("bytes", 42)

	logger.Info("done")

	out := buf.String()
	assert.Contains(t, out, "phase=emit")
	assert.Contains(t, out, "bytes=42")
}

func TestPhaseHandlerEnabledDelegates(t *testing.T) {
	var buf bytes.Buffer

	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	handler := rwlog.NewPhaseHandler(inner, rwlog.PhaseTraverse)

	require.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	require.True(t, handler.Enabled(context.Background(), slog.LevelError))
}
