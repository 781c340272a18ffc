package catalog

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	app "github.com/murkotick/catalog-purchase-service/internal/app/catalog"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/purchase_product"
	"github.com/murkotick/catalog-purchase-service/internal/transport/payload"
)

// Handler is a thin gRPC transport adapter.
// It validates input, maps Struct <-> application DTOs and delegates to the catalog handlers.
type Handler struct {
	commands app.Commands
	queries  app.Queries
	logger   *slog.Logger
}

var _ CatalogServiceServer = (*Handler)(nil)

func NewHandler(cmd app.Commands, qry app.Queries, logger *slog.Logger) *Handler {
	return &Handler{commands: cmd, queries: qry, logger: logger}
}

func (h *Handler) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	appReq, err := payload.Create(body(req))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := h.commands.Create.Execute(ctx, appReq)
	if err != nil {
		return nil, h.fail(err, "", "creating product")
	}
	return h.reply(payload.MsgCreated, map[string]any{"product": out})
}

func (h *Handler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := h.queries.Get.Execute(ctx, id)
	if err != nil {
		return nil, h.fail(err, id, "getting product")
	}
	return h.reply(payload.MsgFound(id), map[string]any{"product": out})
}

func (h *Handler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	m := body(req)

	var q list_products.Query
	if c := stringField(req, "category"); c != "" {
		q.Category = &c
	}

	// Without a limit the scan returns every row.
	if v, ok := m["limit"]; ok {
		n, err := payload.Int("limit", v)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		q.Limit = int(n)
	}

	offset, err := decodePageToken(stringField(req, "page_token"))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if v, ok := m["offset"]; ok {
		n, err := payload.Int("offset", v)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		offset = int(n)
	}
	q.Offset = offset

	items, err := h.queries.List.Execute(ctx, q)
	if err != nil {
		return nil, h.fail(err, "", "getting all products")
	}
	if len(items) == 0 {
		return nil, status.Error(codes.NotFound, payload.MsgNoProducts)
	}

	fields := map[string]any{"products": items}
	if q.Limit > 0 && len(items) == q.Limit {
		fields["next_page_token"] = encodePageToken(offset + len(items))
	}
	return h.reply("", fields)
}

func (h *Handler) UpdateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	appReq, err := payload.Update(id, body(req))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := h.commands.Update.Execute(ctx, appReq); err != nil {
		return nil, h.fail(err, id, "updating the product")
	}
	return h.reply(payload.MsgUpdated(id), nil)
}

func (h *Handler) DeleteProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := h.commands.Delete.Execute(ctx, id); err != nil {
		return nil, h.fail(err, id, "deleting product")
	}
	return &structpb.Struct{}, nil
}

func (h *Handler) PurchaseProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	appReq, err := payload.Purchase(body(req))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := h.commands.Purchase.Execute(ctx, appReq)
	if err != nil {
		// A purchase of an unknown product is a bad request, not a missing resource.
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, status.Error(codes.FailedPrecondition, payload.MsgNotFound(appReq.ProductID))
		}
		return nil, h.fail(err, appReq.ProductID, "buying the product")
	}

	h.logger.Info("purchase", "product_id", appReq.ProductID, "user_quantity", appReq.Quantity,
		"outcome", res.Outcome.String())

	if res.Outcome == purchase_product.Backordered {
		return h.reply(payload.MsgBackordered, map[string]any{"notice": res.Notice})
	}
	return h.reply(payload.MsgPurchased, map[string]any{"receipt": res.Receipt})
}

func (h *Handler) RestockProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := h.commands.Restock.Execute(ctx, id)
	if err != nil {
		return nil, h.fail(err, id, "restocking product")
	}
	return h.reply(payload.MsgRestocked, map[string]any{"product": out})
}

func (h *Handler) fail(err error, id, op string) error {
	st := mapError(err, id, payload.MsgFailed(op))
	if status.Code(st) == codes.Internal {
		h.logger.Error(op+" failed", "product_id", id, "error", err)
	}
	return st
}

func (h *Handler) reply(message string, fields map[string]any) (*structpb.Struct, error) {
	out, err := reply(message, fields)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
