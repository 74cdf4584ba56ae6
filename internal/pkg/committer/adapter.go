package committer

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
)

// Adapter opens Spanner read/write transactions for units of work and applies
// one-shot plans.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply atomically applies the provided mutation plan in its own transaction.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if a.client == nil {
		return errors.New("committer: spanner client is nil")
	}

	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(plan.Mutations())
	})
	return errors.Wrap(err, "committer: apply plan")
}

// Begin opens a statement-based read/write transaction whose lifetime is
// controlled by the caller through Commit or Rollback.
func (a *Adapter) Begin(ctx context.Context) (*Tx, error) {
	if a.client == nil {
		return nil, errors.New("committer: spanner client is nil")
	}
	tx, err := spanner.NewReadWriteStmtBasedTransaction(ctx, a.client)
	if err != nil {
		return nil, errors.Wrap(err, "committer: begin transaction")
	}
	return &Tx{tx: tx}, nil
}

// Tx is an open read/write transaction. Mutations become visible to other
// transactions only after Commit.
type Tx struct {
	tx *spanner.ReadWriteStmtBasedTransaction
}

func (t *Tx) ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error) {
	return t.tx.ReadRow(ctx, table, key, columns)
}

func (t *Tx) Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator {
	return t.tx.Query(ctx, stmt)
}

// Flush buffers the plan's mutations into the transaction and resets the plan.
func (t *Tx) Flush(plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	if err := t.tx.BufferWrite(plan.Mutations()); err != nil {
		return errors.Wrap(err, "committer: buffer mutations")
	}
	plan.Reset()
	return nil
}

func (t *Tx) Commit(ctx context.Context) error {
	_, err := t.tx.Commit(ctx)
	return errors.Wrap(err, "committer: commit")
}

func (t *Tx) Rollback(ctx context.Context) {
	t.tx.Rollback(ctx)
}
