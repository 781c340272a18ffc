package repo

import (
	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	domain "github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/models/m_outbox"
)

// OutboxRepo is the Spanner implementation of the transactional outbox.
// It returns *spanner.Mutation but never applies it.
type OutboxRepo struct {
	newID func() string
}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{newID: uuid.NewString}
}

// InsertMut builds the outbox row for ev, stamped with the event's own time.
func (r *OutboxRepo) InsertMut(ev domain.DomainEvent) (*spanner.Mutation, error) {
	if ev == nil {
		return nil, nil
	}

	payload, err := MarshalDomainEventPayload(ev)
	if err != nil {
		return nil, err
	}

	return m_outbox.InsertMutation(m_outbox.Row{
		EventID:     r.newID(),
		EventType:   ev.EventType(),
		AggregateID: ev.AggregateID(),
		Payload:     payload,
		CreatedAt:   ev.OccurredAt().UTC(),
	}), nil
}
