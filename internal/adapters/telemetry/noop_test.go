package telemetry_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/jig/internal/adapters/telemetry"
)

func TestNoOp(t *testing.T) {
	backend := telemetry.NewNoOp()

	ctx, vertex := backend.Record(context.Background(), "compile")
	require.Equal(t, context.Background(), ctx)
	require.Equal(t, io.Discard, vertex.Stdout())

	vertex.Complete(nil)
	vertex.Cached()
	require.NoError(t, backend.Close())
}
