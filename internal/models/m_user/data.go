package m_user

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a user row.
func InsertMutation(userID int64, firstName, lastName, email, role string, isActive bool, createdAt time.Time) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ColUserID, ColFirstName, ColLastName, ColEmail, ColRole, ColIsActive, ColCreatedAt},
		[]interface{}{userID, firstName, lastName, email, role, isActive, createdAt},
	)
}
