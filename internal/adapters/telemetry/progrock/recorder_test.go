package progrock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jig/internal/adapters/telemetry/progrock"
	"go.trai.ch/jig/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecord_VertexLifecycle(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "compile")
	require.NotNil(t, vertex)

	// Jobs running under the vertex pick it up from the context.
	carried, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	require.Same(t, vertex, carried)

	_, err := vertex.Stdout().Write([]byte("building\n"))
	require.NoError(t, err)

	vertex.Complete(nil)
	require.NoError(t, recorder.Close())
}

func TestRecord_CachedVertex(t *testing.T) {
	recorder := progrock.New()

	_, vertex := recorder.Record(context.Background(), "compile")
	vertex.Cached()

	require.NoError(t, recorder.Close())
}
