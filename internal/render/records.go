package render

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// record is one row restricted to the visible columns, encoded in column
// order. Values are raw; custom renderers only shape text output.
type record struct {
	keys   []string
	values []any
}

func records(tbl *datatable.Table) []record {
	cols := tbl.Store().VisibleColumns()
	out := make([]record, 0, len(tbl.CurrentRows()))
	for _, row := range tbl.CurrentRows() {
		rec := record{keys: make([]string, len(cols)), values: make([]any, len(cols))}
		for i, c := range cols {
			rec.keys[i] = c.Field
			rec.values[i], _ = row.Get(c.Field)
		}
		out = append(out, rec)
	}
	return out
}

// MarshalJSON keeps keys in column order.
func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML keeps keys in column order.
func (r record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range r.keys {
		var val yaml.Node
		if err := val.Encode(r.values[i]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}
