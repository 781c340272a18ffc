// Package payload turns decoded JSON objects into application requests and
// holds the response messages shared by the HTTP and gRPC transports.
package payload

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/purchase_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/update_product"
)

// Field names accepted in request bodies.
const (
	FieldProductName = "product_name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldProductID   = "product_id"
	FieldQuantity    = "user_quantity"
)

// Response messages.
const (
	MsgCreated        = "Product created"
	MsgPurchased      = "Product purchased!"
	MsgBackordered    = "Petition sent to backorder queue"
	MsgRestocked      = "Product restocked"
	MsgNoProducts     = "No products found."
	MsgPurchaseFailed = "An error occurred while buying the product."
)

func MsgFound(id string) string {
	return fmt.Sprintf("Get product by id %s", id)
}

func MsgUpdated(id string) string {
	return fmt.Sprintf("Product with ID %s has been updated successfully.", id)
}

func MsgNotFound(id string) string {
	return fmt.Sprintf("Product with ID %s does not exist.", id)
}

// MsgFailed is the generic downstream message for op, e.g. "creating product".
func MsgFailed(op string) string {
	return fmt.Sprintf("An error occurred while %s.", op)
}

// Int coerces a JSON number or numeric string into an int64.
func Int(field string, v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return floatToInt(field, n)
	case json.Number:
		return parseIntString(field, n.String())
	case string:
		return parseIntString(field, n)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, domain.Invalid("%s must be an integer", field)
	}
}

func parseIntString(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	// "10.0" is accepted as 10
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, domain.Invalid("%s must be an integer", field)
	}
	return floatToInt(field, f)
}

// floatToInt rejects fractions and anything outside [-2^63, 2^63).
// float64(math.MaxInt64) rounds up to 2^63, so the bound is written out.
func floatToInt(field string, f float64) (int64, error) {
	if f != math.Trunc(f) || f >= 0x1p63 || f < -0x1p63 {
		return 0, domain.Invalid("%s must be an integer", field)
	}
	return int64(f), nil
}

func String(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", domain.Invalid("%s must be a string", field)
	}
	return s, nil
}

func requireField(body map[string]any, field string) (any, error) {
	v, ok := body[field]
	if !ok || v == nil {
		return nil, domain.Invalid("%s is required", field)
	}
	return v, nil
}

// Create requires every product field.
func Create(body map[string]any) (create_product.Request, error) {
	var req create_product.Request
	if body == nil {
		return req, domain.Invalid("request body is required")
	}

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{FieldProductName, &req.ProductName},
		{FieldDescription, &req.Description},
		{FieldCategory, &req.Category},
	} {
		v, err := requireField(body, f.name)
		if err != nil {
			return req, err
		}
		if *f.dst, err = String(f.name, v); err != nil {
			return req, err
		}
	}

	for _, f := range []struct {
		name string
		dst  *int64
	}{
		{FieldPrice, &req.Price},
		{FieldStock, &req.Stock},
	} {
		v, err := requireField(body, f.name)
		if err != nil {
			return req, err
		}
		if *f.dst, err = Int(f.name, v); err != nil {
			return req, err
		}
	}

	return req, nil
}

// Update takes whichever product fields are present; at least one must be.
func Update(productID string, body map[string]any) (update_product.Request, error) {
	req := update_product.Request{ProductID: productID}

	for _, f := range []struct {
		name string
		dst  **string
	}{
		{FieldProductName, &req.ProductName},
		{FieldDescription, &req.Description},
		{FieldCategory, &req.Category},
	} {
		v, ok := body[f.name]
		if !ok || v == nil {
			continue
		}
		s, err := String(f.name, v)
		if err != nil {
			return req, err
		}
		*f.dst = &s
	}

	for _, f := range []struct {
		name string
		dst  **int64
	}{
		{FieldPrice, &req.Price},
		{FieldStock, &req.Stock},
	} {
		v, ok := body[f.name]
		if !ok || v == nil {
			continue
		}
		n, err := Int(f.name, v)
		if err != nil {
			return req, err
		}
		*f.dst = &n
	}

	if req.ProductName == nil && req.Description == nil && req.Category == nil &&
		req.Price == nil && req.Stock == nil {
		return req, domain.ErrEmptyUpdate
	}
	return req, nil
}

// Purchase requires product_id and a positive user_quantity.
func Purchase(body map[string]any) (purchase_product.Request, error) {
	var req purchase_product.Request

	v, err := requireField(body, FieldProductID)
	if err != nil {
		return req, err
	}
	if req.ProductID, err = String(FieldProductID, v); err != nil {
		return req, err
	}
	if strings.TrimSpace(req.ProductID) == "" {
		return req, domain.Invalid("%s is required", FieldProductID)
	}

	v, err = requireField(body, FieldQuantity)
	if err != nil {
		return req, err
	}
	if req.Quantity, err = Int(FieldQuantity, v); err != nil {
		return req, err
	}
	if req.Quantity <= 0 {
		return req, domain.Invalid("%s must be a positive integer", FieldQuantity)
	}
	return req, nil
}
