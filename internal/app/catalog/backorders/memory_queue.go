package backorders

import (
	"context"
	"sync"
	"time"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
)

// Message is one notice recorded by MemoryQueue.
type Message struct {
	Body       []byte
	Delay      time.Duration
	Attributes map[string]string
}

// MemoryQueue records sent notices in order.
type MemoryQueue struct {
	mu   sync.Mutex
	sent []Message
}

var _ contracts.BackorderQueue = (*MemoryQueue)(nil)

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Send(_ context.Context, body []byte, delay time.Duration, attributes map[string]string) error {
	attrs := make(map[string]string, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	q.mu.Lock()
	q.sent = append(q.sent, Message{Body: append([]byte(nil), body...), Delay: delay, Attributes: attrs})
	q.mu.Unlock()
	return nil
}

func (q *MemoryQueue) Sent() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Message(nil), q.sent...)
}
