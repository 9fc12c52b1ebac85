package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

const HasherNodeID graft.ID = "adapter.fs.hasher"

func init() {
	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})
}
