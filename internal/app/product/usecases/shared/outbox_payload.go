package shared

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/murkotick/product-launch-service/internal/app/product/contracts"
	"github.com/murkotick/product-launch-service/internal/app/product/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload suitable for the outbox.
//
// The domain layer avoids serialization concerns; this adapter extracts primitives
// (e.g., Money as numerator/denominator) to keep payloads useful.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload interface{}
	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"name":       e.Name,
			"category":   e.Category,
			"price":      moneyPayload(e.Price),
			"user_id":    e.UserID,
			"created_at": e.CreatedAt,
		}

	case *domain.ProductUpdatedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"changes":     e.Changes,
			"updated_at":  e.UpdatedAt,
			"occurred_at": e.OccurredAt(),
		}

	case *domain.PriceChangedEvent:
		payload = map[string]interface{}{
			"product_id":  e.ProductID,
			"old_price":   moneyPayload(e.OldPrice),
			"new_price":   moneyPayload(e.NewPrice),
			"changed_at":  e.ChangedAt,
			"occurred_at": e.OccurredAt(),
		}

	case *domain.ProductPublishedEvent:
		payload = map[string]interface{}{
			"product_id":   e.ProductID,
			"published_at": e.PublishedAt,
			"occurred_at":  e.OccurredAt(),
		}

	case *domain.ProductLaunchedEvent:
		payload = map[string]interface{}{
			"product_id":            e.ProductID,
			"launch_date":           e.LaunchDate,
			"currency":              e.Currency,
			"campaign_ids":          e.CampaignIDs,
			"competing_product_ids": e.CompetingProductIDs,
			"warehouse_count":       e.WarehouseCount,
			"channel_count":         e.ChannelCount,
			"supplier_count":        e.SupplierCount,
			"preferred_suppliers":   e.PreferredSupplierIDs,
			"variant_count":         e.VariantCount,
			"tiered_price_count":    e.TieredPriceCount,
			"promotion_count":       e.PromotionCount,
			"auto_reorder":          e.AutoReorder,
			"reorder_max_stock":     e.ReorderMaxStock,
			"reorder_check_hours":   e.ReorderCheckHours,
			"launched_by":           e.LaunchedBy,
			"occurred_at":           e.OccurredAt(),
		}

	default:
		// Fallback: try to marshal the event directly.
		payload = ev
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrapf(err, "marshal outbox payload for %T", ev)
	}
	return string(b), nil
}

// AppendOutboxEvents enriches events and appends them to the outbox as pending rows.
func AppendOutboxEvents(ctx context.Context, outbox contracts.OutboxRepo, events []domain.DomainEvent, now time.Time) error {
	for _, ev := range events {
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		if err := outbox.Append(ctx, &contracts.OutboxEvent{
			EventID:      uuid.New().String(),
			EventType:    ev.EventType(),
			AggregateID:  ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       contracts.OutboxStatusPending,
			CreatedAtUTC: now.UTC(),
		}); err != nil {
			return errors.Wrapf(err, "append %s event", ev.EventType())
		}
	}
	return nil
}

func moneyPayload(m *domain.Money) map[string]interface{} {
	if m == nil {
		return nil
	}
	return map[string]interface{}{
		"numerator":   m.Numerator(),
		"denominator": m.Denominator(),
	}
}
