package contracts

import (
	"context"
	"time"
)

// AuthorAttribute is the message attribute naming who sent a backorder notice.
const AuthorAttribute = "Author"

// BackorderQueue receives out-of-stock notices. The message becomes visible
// to consumers after delay.
type BackorderQueue interface {
	Send(ctx context.Context, body []byte, delay time.Duration, attributes map[string]string) error
}
