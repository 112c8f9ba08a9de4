// Package rwlog provides the slog.Handler used by the asyncrewrite CLI,
// tagging every record with a rewrite phase (parse, traverse, emit) fixed
// when the handler is built.
package rwlog

import (
	"context"
	"fmt"
	"log/slog"
)

// Phase names the stage of a rewrite a log record was produced during.
type Phase string

const (
	PhaseParse    Phase = "parse"
	PhaseTraverse Phase = "traverse"
	PhaseEmit     Phase = "emit"
)

const attrPhase = "phase"

// PhaseHandler is an [slog.Handler] that stamps every record with a fixed
// phase attribute, the way TracingHandler in the server this CLI is drawn
// from stamps trace context onto every record.
type PhaseHandler struct {
	inner slog.Handler
	phase Phase
}

// NewPhaseHandler wraps inner, pre-attaching phase so it appears at the top
// level of every record regardless of subsequent WithGroup calls.
func NewPhaseHandler(inner slog.Handler, phase Phase) *PhaseHandler {
	return &PhaseHandler{
		inner: inner.WithAttrs([]slog.Attr{slog.String(attrPhase, string(phase))}),
		phase: phase,
	}
}

// Enabled delegates to the inner handler.
func (h *PhaseHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle delegates to the inner handler.
func (h *PhaseHandler) Handle(ctx context.Context, record slog.Record) error {
	if err := h.inner.Handle(ctx, record); err != nil {
		return fmt.Errorf("rwlog: %w", err)
	}

	return nil
}

// WithAttrs returns a new PhaseHandler with additional attributes on the
// inner handler.
func (h *PhaseHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PhaseHandler{inner: h.inner.WithAttrs(attrs), phase: h.phase}
}

// WithGroup returns a new PhaseHandler with a group prefix on the inner
// handler.
func (h *PhaseHandler) WithGroup(name string) slog.Handler {
	return &PhaseHandler{inner: h.inner.WithGroup(name), phase: h.phase}
}
