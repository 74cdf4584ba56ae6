package e2e

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/murkotick/product-launch-service/internal/models/m_outbox"
)

func mustFetchOutboxEvents(ctx context.Context, t *testing.T, client *spanner.Client, productID int64) []m_outbox.Row {
	t.Helper()
	items, err := fetchOutboxEvents(ctx, client, productID)
	require.NoError(t, err)
	return items
}

func fetchOutboxEvents(ctx context.Context, client *spanner.Client, productID int64) ([]m_outbox.Row, error) {
	stmt := spanner.Statement{
		SQL: `SELECT event_id, event_type, aggregate_id, payload, status, created_at, processed_at
        FROM outbox_events
        WHERE aggregate_id = @id
        ORDER BY created_at ASC, event_id ASC`,
		Params: map[string]any{"id": productID},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]m_outbox.Row, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var e m_outbox.Row
		if err := row.ToStruct(&e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func eventTypes(rows []m_outbox.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EventType)
	}
	return out
}

func mustFetchAuditActions(ctx context.Context, t *testing.T, client *spanner.Client, productID int64) []string {
	t.Helper()
	stmt := spanner.Statement{
		SQL:    `SELECT action FROM launch_audit_log WHERE product_id = @id ORDER BY created_at ASC`,
		Params: map[string]any{"id": productID},
	}
	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]string, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out
		}
		require.NoError(t, err)
		var action string
		require.NoError(t, row.Columns(&action))
		out = append(out, action)
	}
}
