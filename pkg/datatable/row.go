package datatable

import (
	"fmt"
	"sort"
	"strings"
)

// IDField is the field that identifies a row.
const IDField = "id"

// Row is one record of named fields. Rows are shared with the caller; the
// table never mutates them.
type Row map[string]any

// ID returns the row's id field as a string, or "" when absent.
func (r Row) ID() string {
	v, ok := r[IDField]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Get returns the value stored under field. A field that is not a direct key
// is resolved as a dotted path through nested maps ("address.city").
func (r Row) Get(field string) (any, bool) {
	if v, ok := r[field]; ok {
		return v, true
	}
	if !strings.Contains(field, ".") {
		return nil, false
	}
	var cur any = map[string]any(r)
	for _, part := range strings.Split(field, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		case Row:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// Fields returns the row's top-level keys with IDField first and the rest
// sorted.
func (r Row) Fields() []string {
	fields := make([]string, 0, len(r))
	hasID := false
	for k := range r {
		if k == IDField {
			hasID = true
			continue
		}
		fields = append(fields, k)
	}
	sort.Strings(fields)
	if hasID {
		fields = append([]string{IDField}, fields...)
	}
	return fields
}
