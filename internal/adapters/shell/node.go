package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jig/internal/adapters/logger"
)

const NodeID graft.ID = "adapter.command_runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Runner, error) {
			log, err := graft.Dep[*logger.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})
}
