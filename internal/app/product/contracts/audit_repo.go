package contracts

import (
	"context"
	"time"
)

// AuditRepo appends audit trail entries within the current unit of work.
type AuditRepo interface {
	Append(ctx context.Context, e *AuditEntry) error
}

// AuditEntry records who did what to which product.
type AuditEntry struct {
	EntryID     string
	ProductID   int64
	Action      string
	ActorID     int64
	ActorEmail  string
	DetailsJSON string
	CreatedAt   time.Time
}
