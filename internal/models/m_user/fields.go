package m_user

// Field constants for the users table.
const (
	TableName = "users"

	ColUserID    = "user_id"
	ColFirstName = "first_name"
	ColLastName  = "last_name"
	ColEmail     = "email"
	ColRole      = "role"
	ColIsActive  = "is_active"
	ColCreatedAt = "created_at"
)
