package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the configuration provider Graft node.
const NodeID graft.ID = "adapter.config_provider"

func init() {
	graft.Register(graft.Node[ports.ConfigProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigProvider, error) {
			root, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to resolve project root")
			}
			return NewProvider(root), nil
		},
	})
}
