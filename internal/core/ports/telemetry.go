package ports

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records per-task execution progress.
type Telemetry interface {
	// Record starts recording a vertex for the named task.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one task's recorded execution.
type Vertex interface {
	// Stdout returns a writer for output produced while the vertex runs.
	Stdout() io.Writer

	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)

	// Cached marks the vertex as skipped because the task was up to date.
	Cached()
}

type vertexContextKey struct{}

// ContextWithVertex returns a context carrying the vertex, so code running
// under a recorded task can stream output into it.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexContextKey{}, v)
}

// VertexFromContext returns the vertex attached by ContextWithVertex, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexContextKey{}).(Vertex)
	return v, ok
}
