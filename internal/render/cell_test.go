package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

func TestStringify(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "abc", "abc"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"whole float", 30.0, "30"},
		{"float", 2.5, "2.5"},
		{"json number", json.Number("7"), "7"},
		{"time", ts, "2024-03-01T12:00:00Z"},
		{"map", map[string]any{"a": 1}, `{"a":1}`},
		{"slice", []any{"x", 2}, `["x",2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.in))
		})
	}
}

func TestCellUsesRenderer(t *testing.T) {
	row := datatable.Row{"name": "ada", "address": map[string]any{"city": "Oslo"}}
	assert.Equal(t, "ada", Cell(datatable.Column{Field: "name"}, row))
	assert.Equal(t, "Oslo", Cell(datatable.Column{Field: "address.city"}, row))
	assert.Equal(t, "", Cell(datatable.Column{Field: "missing"}, row))

	col := datatable.Column{Field: "name", Options: datatable.ColumnOptions{
		Render: func(v any, r datatable.Row) string { return "<" + Stringify(v) + ">" },
	}}
	assert.Equal(t, "<ada>", Cell(col, row))
}

func TestTemplateWithSprig(t *testing.T) {
	render, err := Template("name", `{{ .value | upper }} ({{ .row.age }}) {{ .field }}`)
	require.NoError(t, err)
	assert.Equal(t, "ADA (36) name", render("ada", datatable.Row{"name": "ada", "age": 36}))

	render, err = Template("age", `{{ if gt (int .value) 40 }}senior{{ else }}junior{{ end }}`)
	require.NoError(t, err)
	assert.Equal(t, "senior", render(41, datatable.Row{}))
	assert.Equal(t, "junior", render(12, datatable.Row{}))
}

func TestTemplateErrors(t *testing.T) {
	_, err := Template("name", `{{ .value | `)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)

	render, err := Template("x", `{{ index .value 3 }}`)
	require.NoError(t, err)
	assert.Equal(t, "abc", render("abc", datatable.Row{}), "execution errors fall back to the raw value")
}
