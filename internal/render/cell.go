// Package render turns table state into text: single cells for the
// interactive view and whole pages for non-interactive output.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// Cell returns the display text of column for row.
func Cell(col datatable.Column, row datatable.Row) string {
	v, _ := row.Get(col.Field)
	if col.Options.Render != nil {
		return col.Options.Render(v, row)
	}
	return Stringify(v)
}

// Stringify is the default cell text: "" for nil, plain text for scalars and
// compact JSON for maps and slices.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case map[string]any, datatable.Row, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// FuncMap returns the template functions available to cell templates: the
// sprig text functions plus stringify.
func FuncMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["stringify"] = Stringify
	return fm
}

// Template compiles a cell template for field. The template sees .value,
// .row and .field. Execution errors fall back to the default cell text.
func Template(field, text string) (datatable.CellRenderer, error) {
	tmpl, err := template.New(field).Funcs(FuncMap()).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse render template for %q: %w", field, err)
	}
	return func(value any, row datatable.Row) string {
		var buf bytes.Buffer
		data := map[string]any{
			"value": value,
			"row":   map[string]any(row),
			"field": field,
		}
		if err := tmpl.Execute(&buf, data); err != nil {
			return Stringify(value)
		}
		return buf.String()
	}, nil
}
