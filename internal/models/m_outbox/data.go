package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Row is one outbox record as written by the store.
type Row struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	CreatedAt   time.Time
}

// Values returns the column map for r. New rows are always pending and unprocessed.
func (r Row) Values() map[string]interface{} {
	return map[string]interface{}{
		ColEventID:     r.EventID,
		ColEventType:   r.EventType,
		ColAggregateID: r.AggregateID,
		ColPayload:     r.Payload,
		ColStatus:      StatusPending,
		ColCreatedAt:   r.CreatedAt,
		ColProcessedAt: nil,
	}
}

// InsertMutation constructs an insert of r into the outbox table.
func InsertMutation(r Row) *spanner.Mutation {
	return spanner.InsertMap(TableName, r.Values())
}
