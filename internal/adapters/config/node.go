package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jig/internal/adapters/fs"
	"go.trai.ch/jig/internal/adapters/shell"
	"go.trai.ch/jig/internal/adapters/store"
	"go.trai.ch/jig/internal/core/ports"
)

const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, fs.HasherNodeID, store.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			runner, err := graft.Dep[*shell.Runner](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[ports.SettingsStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewFileConfigLoader(runner, hasher, settings), nil
		},
	})
}
