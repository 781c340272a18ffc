package purchase_product

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-purchase-service/internal/pkg/clock"
)

// Outcome tells the two successful purchase results apart.
type Outcome int

const (
	Purchased Outcome = iota + 1
	Backordered
)

func (o Outcome) String() string {
	switch o {
	case Purchased:
		return "purchased"
	case Backordered:
		return "backordered"
	default:
		return "unknown"
	}
}

const (
	DefaultBackorderDelay  = 10 * time.Second
	DefaultBackorderAuthor = "catalog-purchase-service"

	receiptDestinationPrefix = "receipts-"
)

// Request is a purchase of Quantity units of ProductID.
type Request struct {
	ProductID string
	Quantity  int64
}

// Result carries either a receipt or a backorder notice, never both.
type Result struct {
	Outcome     Outcome
	Destination string
	Receipt     *dto.ReceiptDTO
	Notice      *dto.BackorderDTO
}

// Interactor runs the purchase workflow: lookup, stock check, conditional
// stock decrement, then a receipt write or a backorder notice.
type Interactor struct {
	Store  contracts.ProductStore
	Sink   contracts.ReceiptSink
	Queue  contracts.BackorderQueue
	Clock  clock.Clock
	Delay  time.Duration
	Author string
	NewID  func() string
}

func NewInteractor(
	store contracts.ProductStore,
	sink contracts.ReceiptSink,
	queue contracts.BackorderQueue,
	clk clock.Clock,
	delay time.Duration,
	author string,
) *Interactor {
	if delay <= 0 {
		delay = DefaultBackorderDelay
	}
	if author == "" {
		author = DefaultBackorderAuthor
	}
	return &Interactor{
		Store:  store,
		Sink:   sink,
		Queue:  queue,
		Clock:  clk,
		Delay:  delay,
		Author: author,
		NewID:  uuid.NewString,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.ProductID == "" {
		return nil, domain.Invalid("product_id is required")
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// 1. Lookup; a missing product leaves every leaf untouched
	product, err := it.Store.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 2. Stock check and decrement on the aggregate
	expected := product.Stock()
	receipt, err := product.Purchase(req.Quantity, it.Clock.Now())
	if errors.Is(err, domain.ErrInsufficientStock) {
		return it.backorder(ctx, product, req.Quantity)
	}
	if err != nil {
		return nil, err
	}

	// 3. Conditional write: loses with a conflict if stock moved since the read
	if err := it.Store.UpdateIfStock(ctx, product, expected); err != nil {
		return nil, err
	}

	// 4. Receipt; the purchased outbox event already records the sale
	out := dto.FromReceipt(receipt)
	body, err := json.Marshal(out)
	if err != nil {
		return nil, domain.E(domain.KindDownstream, "purchase.receipt", err)
	}

	destination := receiptDestinationPrefix + it.NewID()
	if err := it.Sink.CreateDestination(ctx, destination); err != nil {
		return nil, domain.E(domain.KindDownstream, "purchase.create_destination", err)
	}
	if err := it.Sink.WriteObject(ctx, destination, receiptObjectName(receipt), body); err != nil {
		return nil, domain.E(domain.KindDownstream, "purchase.write_receipt", err)
	}

	return &Result{Outcome: Purchased, Destination: destination, Receipt: out}, nil
}

func (it *Interactor) backorder(ctx context.Context, product *domain.Product, quantity int64) (*Result, error) {
	notice := dto.FromBackorderNotice(domain.NewBackorderNotice(product, quantity))

	body, err := json.Marshal(notice)
	if err != nil {
		return nil, domain.E(domain.KindDownstream, "purchase.backorder", err)
	}

	attrs := map[string]string{contracts.AuthorAttribute: it.Author}
	if err := it.Queue.Send(ctx, body, it.Delay, attrs); err != nil {
		return nil, domain.E(domain.KindDownstream, "purchase.backorder", err)
	}

	return &Result{Outcome: Backordered, Notice: notice}, nil
}

func receiptObjectName(r *domain.Receipt) string {
	return "receipt-" + r.Timestamp.UTC().Format("20060102T150405.000000000Z") + ".json"
}
