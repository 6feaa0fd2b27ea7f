package server

import (
	"context"

	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

// HealthService reports whether the API's backing dependencies are reachable.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService probes the Neo4j connection the whole API depends on.
// A nil client reports healthy, so the router can run without a graph
// attached.
type GraphHealthService struct {
	Client graph.Querier
}

func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.VerifyConnectivity(ctx)
}
