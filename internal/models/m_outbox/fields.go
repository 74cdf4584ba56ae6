package m_outbox

// Table and column names of the transactional outbox. aggregate_id holds the
// product id the event belongs to.
const (
	TableName = "outbox_events"

	ColEventID     = "event_id"
	ColEventType   = "event_type"
	ColAggregateID = "aggregate_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"
)

// Columns is the column order used by InsertMutation.
var Columns = []string{
	ColEventID,
	ColEventType,
	ColAggregateID,
	ColPayload,
	ColStatus,
	ColCreatedAt,
	ColProcessedAt,
}
