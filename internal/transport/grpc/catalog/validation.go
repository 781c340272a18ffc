package catalog

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// requireID returns the "id" field or an error when it is missing or empty.
func requireID(req *structpb.Struct) (string, error) {
	if req == nil {
		return "", fmt.Errorf("request is required")
	}
	id := stringField(req, "id")
	if id == "" {
		return "", fmt.Errorf("id is required")
	}
	return id, nil
}

// body returns the request as a plain map with "id" removed.
func body(req *structpb.Struct) map[string]any {
	if req == nil {
		return nil
	}
	m := req.AsMap()
	delete(m, "id")
	return m
}
