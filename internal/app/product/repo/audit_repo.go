package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/models/m_audit"
)

// AuditRepo builds mutations for the launch audit log.
type AuditRepo struct{}

func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

func (r *AuditRepo) InsertMut(e *contracts.AuditEntry) *spanner.Mutation {
	if e == nil {
		return nil
	}
	return m_audit.InsertMutation(m_audit.BuildInsertMap(
		e.EntryID,
		e.ProductID,
		e.Action,
		e.ActorID,
		e.ActorEmail,
		e.DetailsJSON,
		e.CreatedAt.UTC(),
	))
}
