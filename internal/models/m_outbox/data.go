package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row is one outbox record. The spanner tags let readers decode rows with
// Row.ToStruct.
type Row struct {
	EventID     string           `spanner:"event_id"`
	EventType   string           `spanner:"event_type"`
	AggregateID int64            `spanner:"aggregate_id"`
	Payload     string           `spanner:"payload"`
	Status      string           `spanner:"status"`
	CreatedAt   time.Time        `spanner:"created_at"`
	ProcessedAt spanner.NullTime `spanner:"processed_at"`
}

// InsertMutation inserts r. ProcessedAt is written as given, normally NULL.
func InsertMutation(r Row) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		r.EventID,
		r.EventType,
		r.AggregateID,
		r.Payload,
		r.Status,
		r.CreatedAt.UTC(),
		r.ProcessedAt,
	})
}
