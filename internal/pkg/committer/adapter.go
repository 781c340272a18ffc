package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply runs the plan in one read-write transaction: guards first, then the
// buffered mutations. A guard that matches no row rolls everything back.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	if a.client == nil {
		return fmt.Errorf("committer: spanner client is nil")
	}

	var guardErr error
	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		// The body may be retried on abort, so reset per attempt.
		guardErr = nil
		for _, g := range plan.Guards() {
			n, err := tx.Update(ctx, g.Stmt)
			if err != nil {
				return err
			}
			if n == 0 {
				guardErr = g.Err
				return guardErr
			}
		}
		if len(plan.Mutations()) == 0 {
			return nil
		}
		return tx.BufferWrite(plan.Mutations())
	})
	if guardErr != nil {
		return guardErr
	}
	return err
}
