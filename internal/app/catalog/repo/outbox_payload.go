package repo

import (
	"encoding/json"
	"fmt"

	domain "github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
)

// MarshalDomainEventPayload converts a domain event into the JSON payload
// stored in the outbox.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}

	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload = map[string]interface{}{
			"product_id":   e.ProductID,
			"product_name": e.ProductName,
			"category":     e.Category,
			"price":        e.Price,
			"stock":        e.Stock,
			"created_at":   e.CreatedAt,
		}

	case *domain.ProductUpdatedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"changes":    e.Changes,
			"updated_at": e.UpdatedAt,
		}

	case *domain.ProductPurchasedEvent:
		// Carries the receipt fields so the sale is traceable even if the
		// receipt object never lands in the sink.
		payload = map[string]interface{}{
			"product_id":    e.ProductID,
			"product_name":  e.ProductName,
			"products_sold": e.Quantity,
			"total_price":   e.TotalPrice,
			"stock_after":   e.StockAfter,
			"timestamp":     e.PurchasedAt,
		}

	case *domain.ProductRestockedEvent:
		payload = map[string]interface{}{
			"product_id":   e.ProductID,
			"stock_before": e.StockBefore,
			"stock_after":  e.StockAfter,
			"restocked_at": e.RestockedAt,
		}

	case *domain.ProductDeletedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"deleted_at": e.DeletedAt,
		}

	default:
		b, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
		}
		return string(b), nil
	}

	payload["event_type"] = ev.EventType()
	payload["occurred_at"] = ev.OccurredAt()

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}
