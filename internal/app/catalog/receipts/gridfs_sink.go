package receipts

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
)

// codeNamespaceExists is returned by create when the collection is already there.
const codeNamespaceExists = 48

// ErrDestinationExists is returned when a destination name is reused.
var ErrDestinationExists = errors.New("receipt destination already exists")

// GridFSSink stores each destination as its own GridFS bucket in Database.
// A destination is created by creating the bucket's files collection.
type GridFSSink struct {
	Database *mongo.Database
}

var _ contracts.ReceiptSink = (*GridFSSink)(nil)

func NewGridFSSink(db *mongo.Database) *GridFSSink {
	return &GridFSSink{Database: db}
}

func (s *GridFSSink) CreateDestination(ctx context.Context, name string) error {
	err := s.Database.CreateCollection(ctx, name+".files")
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == codeNamespaceExists {
		return fmt.Errorf("%s: %w", name, ErrDestinationExists)
	}
	return err
}

func (s *GridFSSink) WriteObject(ctx context.Context, destination, name string, body []byte) error {
	bucket, err := gridfs.NewBucket(s.Database, options.GridFSBucket().SetName(destination))
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "content_type", Value: "application/json"}})
	if _, err := bucket.UploadFromStream(name, bytes.NewReader(body), opts); err != nil {
		return fmt.Errorf("upload %s/%s: %w", destination, name, err)
	}
	return nil
}
