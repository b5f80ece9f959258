package inline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lessc/internal/core/ports"
)

// NodeID is the unique identifier for the inline engine graft node.
const NodeID graft.ID = "adapter.engine"

func init() {
	graft.Register(graft.Node[ports.Engine]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Engine, error) {
			return New(), nil
		},
	})
}
