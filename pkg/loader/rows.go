package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// Row is re-exported so callers need not import datatable for loading.
type Row = datatable.Row

// ErrNotRecord is returned when a row position holds something other than an
// object.
var ErrNotRecord = errors.New("row is not an object")

// collectionKeys are the top-level keys whose array is taken as the row set
// when the input is a single object.
var collectionKeys = []string{"rows", "data", "items"}

// RowsFromDocuments flattens parsed documents into rows: each document that
// is an array contributes its elements, an object holding a rows/data/items
// array contributes that array, and any other object is one row. Rows
// without an id get a deterministic one.
func RowsFromDocuments(docs []any) ([]Row, error) {
	var rows []Row
	for _, doc := range docs {
		for _, item := range expand(doc) {
			m, ok := normalize(item).(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrNotRecord, len(rows), item)
			}
			rows = append(rows, Row(m))
		}
	}
	EnsureIDs(rows)
	return rows, nil
}

func expand(doc any) []any {
	switch v := doc.(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	case map[string]any:
		for _, key := range collectionKeys {
			if arr, ok := v[key]; ok {
				if items := expandArray(arr); items != nil {
					return items
				}
			}
		}
	}
	return []any{doc}
}

func expandArray(v any) []any {
	switch arr := v.(type) {
	case []any:
		return arr
	case []map[string]any:
		out := make([]any, len(arr))
		for i, m := range arr {
			out[i] = m
		}
		return out
	}
	return nil
}

// normalize converts YAML's map[any]any into map[string]any, recursively.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			val[k] = normalize(inner)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[fmt.Sprint(k)] = normalize(inner)
		}
		return out
	case []any:
		for i, inner := range val {
			val[i] = normalize(inner)
		}
		return val
	}
	return v
}

// EnsureIDs assigns an id to rows lacking one: a SHA-1 UUID of the row's
// canonical JSON and its position, so reloading the same input yields the
// same ids.
func EnsureIDs(rows []Row) {
	for i, row := range rows {
		if row.ID() != "" {
			continue
		}
		data, err := json.Marshal(map[string]any(row))
		if err != nil {
			data = []byte(fmt.Sprint(map[string]any(row)))
		}
		data = append(data, strconv.Itoa(i)...)
		row[datatable.IDField] = uuid.NewSHA1(uuid.NameSpaceDNS, data).String()
	}
}

// LoadObject converts already-parsed values (structs, slices of structs,
// maps) into rows via a JSON round trip, honoring json struct tags.
func LoadObject(value any) ([]Row, error) {
	if value == nil {
		return nil, fmt.Errorf("object input is nil")
	}
	if s, ok := value.(string); ok {
		return LoadRows(s)
	}
	if b, ok := value.([]byte); ok {
		return LoadRows(string(b))
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal %T to JSON: %w", value, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot unmarshal to standard type: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("object input is nil")
	}
	return RowsFromDocuments([]any{doc})
}
