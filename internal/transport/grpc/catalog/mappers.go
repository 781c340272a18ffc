package catalog

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// plain renders v through its JSON tags into maps, slices and scalars that
// structpb accepts.
func plain(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// reply builds a struct from message plus the given key/value fields.
func reply(message string, fields map[string]any) (*structpb.Struct, error) {
	m := make(map[string]any, len(fields)+1)
	if message != "" {
		m["message"] = message
	}
	for k, v := range fields {
		pv, err := plain(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		m[k] = pv
	}
	return structpb.NewStruct(m)
}

func stringField(in *structpb.Struct, key string) string {
	if in == nil {
		return ""
	}
	v, ok := in.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}
