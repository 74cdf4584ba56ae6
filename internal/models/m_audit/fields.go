package m_audit

const (
	TableName = "launch_audit_log"

	ColEntryID    = "entry_id"
	ColProductID  = "product_id"
	ColAction     = "action"
	ColActorID    = "actor_id"
	ColActorEmail = "actor_email"
	ColDetails    = "details"
	ColCreatedAt  = "created_at"
)
