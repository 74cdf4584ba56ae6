package contracts

import "context"

// UnitOfWork exposes repositories bound to one transaction and its boundaries.
// A UnitOfWork is single-use: Begin once, then either Commit or Rollback.
type UnitOfWork interface {
	Products() ProductStore
	Users() UserStore
	Outbox() OutboxRepo
	Audit() AuditRepo

	Begin(ctx context.Context) error

	// Save flushes pending writes into the open transaction without committing.
	Save(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory creates a fresh UnitOfWork per command invocation.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
