package graph

import (
	"context"
	"errors"
)

// Querier is the minimal contract the repositories need to talk to the
// property graph. Read and Write map onto driver sessions with the matching
// access mode; both return fully drained result rows.
type Querier interface {
	Read(ctx context.Context, cypher string, params map[string]any) ([]Record, error)
	Write(ctx context.Context, cypher string, params map[string]any) ([]Record, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Record is one row of bound variables returned by a traversal.
type Record map[string]any

// Options configures a graph connection.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
