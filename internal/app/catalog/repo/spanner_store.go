package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	domain "github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/models/m_product"
	commitplan "github.com/murkotick/catalog-purchase-service/internal/pkg/committer"
)

// SpannerStore is the Spanner-backed Record Store. Reads go straight to the
// client; writes are assembled as a commit plan and handed to the committer.
type SpannerStore struct {
	client    *spanner.Client
	committer contracts.Committer
	products  *ProductRepo
	outbox    *OutboxRepo
}

var _ contracts.ProductStore = (*SpannerStore)(nil)

func NewSpannerStore(client *spanner.Client, committer contracts.Committer) *SpannerStore {
	return &SpannerStore{
		client:    client,
		committer: committer,
		products:  NewProductRepo(),
		outbox:    NewOutboxRepo(),
	}
}

var selectColumns = strings.Join(m_product.AllColumns, ", ")

func (s *SpannerStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT ` + selectColumns + ` FROM products WHERE product_id = @id`,
		Params: map[string]interface{}{"id": id},
	}

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, domain.E(domain.KindDownstream, "spanner.Get", err)
	}

	p, err := productFromRow(row)
	if err != nil {
		return nil, domain.E(domain.KindDownstream, "spanner.Get", err)
	}
	return p, nil
}

func (s *SpannerStore) Scan(ctx context.Context, filter contracts.ScanFilter) ([]*domain.Product, error) {
	sql := `SELECT ` + selectColumns + ` FROM products`
	params := map[string]interface{}{}
	if filter.Category != nil {
		sql += " WHERE category = @category"
		params["category"] = *filter.Category
	}
	sql += " ORDER BY product_id ASC"

	skip := filter.Offset
	if filter.Limit > 0 {
		sql += " LIMIT @limit OFFSET @offset"
		params["limit"] = int64(filter.Limit)
		params["offset"] = int64(filter.Offset)
		skip = 0
	}

	iter := s.client.Single().Query(ctx, spanner.Statement{SQL: sql, Params: params})
	defer iter.Stop()

	out := make([]*domain.Product, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, domain.E(domain.KindDownstream, "spanner.Scan", err)
		}
		if skip > 0 {
			skip--
			continue
		}

		p, err := productFromRow(row)
		if err != nil {
			return nil, domain.E(domain.KindDownstream, "spanner.Scan", err)
		}
		out = append(out, p)
	}
}

func (s *SpannerStore) Insert(ctx context.Context, p *domain.Product) error {
	plan := commitplan.NewPlan()
	plan.Add(s.products.InsertMut(p))
	return s.commit(ctx, "spanner.Insert", plan, p)
}

func (s *SpannerStore) Update(ctx context.Context, p *domain.Product) error {
	plan := commitplan.NewPlan()
	plan.Add(s.products.UpdateMut(p))
	return s.commit(ctx, "spanner.Update", plan, p)
}

func (s *SpannerStore) UpdateIfStock(ctx context.Context, p *domain.Product, expectedStock int64) error {
	plan := commitplan.NewPlan()
	if stmt, ok := s.products.ConditionalUpdateStmt(p, expectedStock); ok {
		plan.AddGuard(stmt, domain.ErrConcurrentModification)
	}
	return s.commit(ctx, "spanner.UpdateIfStock", plan, p)
}

func (s *SpannerStore) Delete(ctx context.Context, id string, events ...domain.DomainEvent) error {
	plan := commitplan.NewPlan()
	plan.AddGuard(s.products.DeleteStmt(id), domain.ErrProductNotFound)
	if err := s.addEvents(plan, events); err != nil {
		return domain.E(domain.KindDownstream, "spanner.Delete", err)
	}
	if err := s.committer.Apply(ctx, plan); err != nil {
		return translateError("spanner.Delete", err)
	}
	return nil
}

// commit appends p's pending events to plan, applies it and resets p's
// change tracking on success. A plan with nothing to write is skipped.
func (s *SpannerStore) commit(ctx context.Context, op string, plan *commitplan.Plan, p *domain.Product) error {
	if err := s.addEvents(plan, p.DomainEvents()); err != nil {
		return domain.E(domain.KindDownstream, op, err)
	}
	if plan.IsEmpty() {
		return nil
	}
	if err := s.committer.Apply(ctx, plan); err != nil {
		return translateError(op, err)
	}
	p.ClearEvents()
	p.Changes().Clear()
	return nil
}

func (s *SpannerStore) addEvents(plan *commitplan.Plan, events []domain.DomainEvent) error {
	for _, ev := range events {
		m, err := s.outbox.InsertMut(ev)
		if err != nil {
			return err
		}
		plan.Add(m)
	}
	return nil
}

// translateError keeps domain sentinels from guards and maps Spanner status
// codes onto error kinds.
func translateError(op string, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrConcurrentModification) {
		return err
	}
	if spanner.ErrCode(err) == codes.NotFound {
		// Update mutations against a missing row.
		return domain.E(domain.KindNotFound, op, domain.ErrProductNotFound)
	}
	return domain.E(domain.KindDownstream, op, err)
}

func productFromRow(row *spanner.Row) (*domain.Product, error) {
	var (
		id, name, description, category string
		price, stock                    int64
		createdAt, updatedAt            time.Time
	)
	if err := row.Columns(&id, &name, &description, &category, &price, &stock, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.ReconstructProduct(id, name, description, category, price, stock,
		createdAt.UTC(), updatedAt.UTC()), nil
}
