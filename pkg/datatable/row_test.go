package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowID(t *testing.T) {
	assert.Equal(t, "abc", Row{"id": "abc"}.ID())
	assert.Equal(t, "42", Row{"id": 42}.ID())
	assert.Equal(t, "", Row{"name": "x"}.ID())
	assert.Equal(t, "", Row{"id": nil}.ID())
}

func TestRowGet(t *testing.T) {
	row := Row{
		"name":    "x",
		"a.b":     "literal",
		"address": map[string]any{"city": "Oslo", "geo": map[string]any{"lat": 59.9}},
	}
	tests := []struct {
		field  string
		want   any
		wantOk bool
	}{
		{"name", "x", true},
		{"a.b", "literal", true},
		{"address.city", "Oslo", true},
		{"address.geo.lat", 59.9, true},
		{"address.zip", nil, false},
		{"name.first", nil, false},
		{"missing", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := row.Get(tt.field)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowFields(t *testing.T) {
	assert.Equal(t, []string{"id", "a", "b"}, Row{"b": 1, "id": 2, "a": 3}.Fields())
	assert.Equal(t, []string{"a", "b"}, Row{"b": 1, "a": 3}.Fields())
}

func TestInferColumns(t *testing.T) {
	rows := []Row{{"name": "a"}, {"id": "1", "age": 3}}
	cols := InferColumns(rows)
	fields := make([]string, len(cols))
	for i, c := range cols {
		fields[i] = c.Field
		assert.True(t, c.Options.Sort)
		assert.True(t, c.Visible())
	}
	assert.Equal(t, []string{"id", "name", "age"}, fields)
	assert.Empty(t, InferColumns(nil))
}

func TestColumnTitleAndVisible(t *testing.T) {
	assert.Equal(t, "Name", Column{Field: "name", Label: "Name"}.Title())
	assert.Equal(t, "name", Column{Field: "name"}.Title())
	assert.False(t, Column{Options: ColumnOptions{Display: Bool(false)}}.Visible())
	assert.True(t, Column{Options: ColumnOptions{Display: Bool(true)}}.Visible())
}
