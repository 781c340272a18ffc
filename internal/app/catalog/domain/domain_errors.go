package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers. The set is closed: anything that is
// not explicitly classified is a downstream failure.
type Kind int

const (
	// KindDownstream covers store, sink and queue failures and any unclassified error.
	KindDownstream Kind = iota
	// KindValidation means the request itself was malformed.
	KindValidation
	// KindNotFound means the addressed product does not exist.
	KindNotFound
	// KindConflict means a conditional write lost against a concurrent change.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "downstream"
	}
}

// Error attaches a Kind and the failing operation to an underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err with a kind and operation name. A nil err yields nil.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Invalid builds a validation error from a formatted message.
func Invalid(format string, args ...any) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of err. Explicit *Error wrappers win over sentinels.
func KindOf(err error) Kind {
	if err == nil {
		return KindDownstream
	}

	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}

	switch {
	case errors.Is(err, ErrProductNotFound):
		return KindNotFound
	case errors.Is(err, ErrConcurrentModification):
		return KindConflict
	case errors.Is(err, ErrEmptyProductName),
		errors.Is(err, ErrEmptyProductCategory),
		errors.Is(err, ErrProductNameTooLong),
		errors.Is(err, ErrProductCategoryTooLong),
		errors.Is(err, ErrNegativePrice),
		errors.Is(err, ErrNegativeStock),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrEmptyUpdate),
		errors.Is(err, ErrTotalPriceOverflow):
		return KindValidation
	}
	return KindDownstream
}

// Product lookup and concurrency errors
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrConcurrentModification indicates the product changed between read and conditional write.
	ErrConcurrentModification = errors.New("product was modified concurrently")

	// ErrInsufficientStock indicates the requested quantity cannot be served from stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product validation errors
var (
	ErrEmptyProductName       = errors.New("product name cannot be empty")
	ErrEmptyProductCategory   = errors.New("product category cannot be empty")
	ErrProductNameTooLong     = errors.New("product name exceeds maximum length of 255 characters")
	ErrProductCategoryTooLong = errors.New("product category exceeds maximum length of 100 characters")
	ErrNegativePrice          = errors.New("price cannot be negative")
	ErrNegativeStock          = errors.New("stock cannot be negative")
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrEmptyUpdate            = errors.New("at least one field must be provided")
	ErrTotalPriceOverflow     = errors.New("total price exceeds the supported range")
)
