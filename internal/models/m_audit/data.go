package m_audit

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap constructs the column map of one audit entry.
func BuildInsertMap(entryID string, productID int64, action string, actorID int64, actorEmail, details string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEntryID:    entryID,
		ColProductID:  productID,
		ColAction:     action,
		ColActorID:    actorID,
		ColActorEmail: actorEmail,
		ColDetails:    details,
		ColCreatedAt:  createdAt,
	}
}

// InsertMutation constructs a mutation for the audit table.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}
