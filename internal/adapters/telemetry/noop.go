// Package telemetry selects the build telemetry backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/jig/internal/core/ports"
)

// NoOp is a telemetry implementation that records nothing. It is used when no
// terminal is attached.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry backend.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards everything.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &NoOpVertex{}
}

// Close does nothing.
func (t *NoOp) Close() error { return nil }

// NoOpVertex is a no-op implementation of ports.Vertex.
type NoOpVertex struct{}

// Stdout returns a writer that discards all output.
func (v *NoOpVertex) Stdout() io.Writer { return io.Discard }

// Complete does nothing.
func (v *NoOpVertex) Complete(_ error) {}

// Cached does nothing.
func (v *NoOpVertex) Cached() {}
