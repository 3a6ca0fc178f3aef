package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pack/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/esbuild"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/pack/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			esbuild.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			bundler, err := graft.Dep[ports.Bundler](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(bundler, hasher, store, telemetry), nil
		},
	})
}
