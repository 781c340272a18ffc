package backorders

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/dto"
)

// Consume handles deliveries until ctx is done or the channel closes.
func Consume(ctx context.Context, deliveries <-chan amqp.Delivery, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			HandleDelivery(d, logger)
		}
	}
}

// HandleDelivery logs one notice and acks it. Malformed bodies are rejected
// without requeue so they are not redelivered.
func HandleDelivery(d amqp.Delivery, logger *slog.Logger) {
	var notice dto.BackorderDTO
	if err := json.Unmarshal(d.Body, &notice); err != nil || notice.ProductID == "" {
		logger.Warn("rejecting malformed backorder notice", "message_id", d.MessageId, "error", err)
		if rerr := d.Reject(false); rerr != nil {
			logger.Error("reject failed", "message_id", d.MessageId, "error", rerr)
		}
		return
	}

	author, _ := d.Headers[contracts.AuthorAttribute].(string)
	logger.Info("backorder notice",
		"message_id", d.MessageId,
		"author", author,
		"product_id", notice.ProductID,
		"product_name", notice.ProductName,
		"user_quantity", notice.Quantity,
		"message", notice.Message,
	)

	if err := d.Ack(false); err != nil {
		logger.Error("ack failed", "message_id", d.MessageId, "error", err)
	}
}
