package backorders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
)

// Publisher is the subset of *amqp.Channel used to send notices.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Declarer is the subset of *amqp.Channel used to declare queues.
type Declarer interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
}

// DelayQueueName is the holding queue for notices that are not yet visible.
// Expired messages are dead-lettered onto queue through the default exchange.
func DelayQueueName(queue string) string {
	return queue + ".delay"
}

// Declare declares the backorder queue and its delay queue. Both are durable.
func Declare(ch Declarer, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", queue, err)
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": queue,
	}
	if _, err := ch.QueueDeclare(DelayQueueName(queue), true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", DelayQueueName(queue), err)
	}
	return nil
}

// RabbitMQQueue publishes backorder notices. A positive delay routes the
// message through the delay queue with a per-message expiration.
type RabbitMQQueue struct {
	Publisher Publisher
	Queue     string
	Now       func() time.Time
}

var _ contracts.BackorderQueue = (*RabbitMQQueue)(nil)

func NewRabbitMQQueue(p Publisher, queue string) *RabbitMQQueue {
	return &RabbitMQQueue{Publisher: p, Queue: queue, Now: time.Now}
}

func (q *RabbitMQQueue) Send(ctx context.Context, body []byte, delay time.Duration, attributes map[string]string) error {
	headers := amqp.Table{}
	for k, v := range attributes {
		headers[k] = v
	}

	msg := amqp.Publishing{
		Headers:      headers,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    q.Now().UTC(),
		Body:         body,
	}

	key := q.Queue
	if delay > 0 {
		key = DelayQueueName(q.Queue)
		msg.Expiration = strconv.FormatInt(delay.Milliseconds(), 10)
	}

	if err := q.Publisher.PublishWithContext(ctx, "", key, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", key, err)
	}
	return nil
}
