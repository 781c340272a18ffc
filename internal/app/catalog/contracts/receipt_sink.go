package contracts

import "context"

// ReceiptSink is write-once object storage for purchase receipts.
type ReceiptSink interface {
	CreateDestination(ctx context.Context, name string) error
	WriteObject(ctx context.Context, destination, name string, body []byte) error
}
