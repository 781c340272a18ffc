package catalog

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/transport/payload"
)

// mapError translates error kinds into gRPC status codes. Downstream causes
// are replaced by failMsg; the caller logs them.
func mapError(err error, id, failMsg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.KindNotFound:
		return status.Error(codes.NotFound, payload.MsgNotFound(id))
	case domain.KindConflict:
		return status.Error(codes.Aborted, err.Error())
	}
	return status.Error(codes.Internal, failMsg)
}
