package contracts

import (
	"context"

	commitplan "github.com/murkotick/catalog-purchase-service/internal/pkg/committer"
)

// Committer applies a commit plan atomically. The Spanner store depends on
// this instead of the client so its write path can be tested without one.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
