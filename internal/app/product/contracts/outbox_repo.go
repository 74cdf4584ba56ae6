package contracts

import (
	"context"
	"time"
)

// OutboxRepo appends events to the transactional outbox of the current unit of work.
type OutboxRepo interface {
	Append(ctx context.Context, e *OutboxEvent) error
}

// OutboxEvent is the application-level representation of an event persisted to the outbox table.
// Usecases are responsible for enriching domain events into this structure.
type OutboxEvent struct {
	EventID      string
	EventType    string
	AggregateID  int64
	PayloadJSON  string
	Status       string
	CreatedAtUTC time.Time
}

// OutboxStatusPending marks events not yet picked up by a relay.
const OutboxStatusPending = "pending"
