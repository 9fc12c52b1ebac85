package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/mattn/go-isatty"
	"go.trai.ch/jig/internal/adapters/telemetry/progrock"
	"go.trai.ch/jig/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if !isatty.IsTerminal(os.Stderr.Fd()) {
				return NewNoOp(), nil
			}
			return progrock.New(), nil
		},
	})
}
