package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"
)

// Store is the document-store capability the repositories build on. Documents
// are opaque JSON at this boundary; typed (de)serialization happens in the
// repository layer.
type Store interface {
	// Get returns the document stored under (table, key), or found=false.
	Get(ctx context.Context, table, key string) ([]byte, bool, error)
	// Put stores doc under (table, key), replacing any existing document.
	Put(ctx context.Context, table, key string, doc []byte) error
	// Scan returns partial documents containing only the projected top-level
	// fields. A non-empty filterField keeps only documents whose field equals
	// filterValue.
	Scan(ctx context.Context, table string, projection []string, filterField, filterValue string) ([][]byte, error)
	// UpdatePath overwrites the nested field at path with value without
	// rewriting the rest of the document.
	UpdatePath(ctx context.Context, table, key string, path []string, value []byte) error
}

// Project trims doc down to the requested top-level fields. An empty
// projection returns the document unchanged.
func Project(doc []byte, fields []string) ([]byte, error) {
	if len(fields) == 0 {
		return doc, nil
	}

	var full map[string]json.RawMessage
	if err := sonic.Unmarshal(doc, &full); err != nil {
		return nil, fmt.Errorf("decode document for projection: %w", err)
	}

	partial := make(map[string]json.RawMessage, len(fields))
	for _, field := range fields {
		if raw, ok := full[field]; ok {
			partial[field] = raw
		}
	}

	out, err := sonic.Marshal(partial)
	if err != nil {
		return nil, fmt.Errorf("encode projected document: %w", err)
	}
	return out, nil
}

// FieldEquals reports whether the top-level field of doc equals want after
// stringifying. Numeric fields compare against their decimal form so callers
// can filter on either shape.
func FieldEquals(doc []byte, field, want string) (bool, error) {
	var full map[string]any
	if err := sonic.Unmarshal(doc, &full); err != nil {
		return false, fmt.Errorf("decode document for filter: %w", err)
	}

	v, ok := full[field]
	if !ok {
		return false, nil
	}
	switch value := v.(type) {
	case string:
		return value == want, nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64) == want, nil
	case bool:
		return strconv.FormatBool(value) == want, nil
	default:
		return false, nil
	}
}
