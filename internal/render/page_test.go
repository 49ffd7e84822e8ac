package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// stripANSI removes ANSI CSI sequences so assertions see visible text only.
func stripANSI(s string) string {
	var sb strings.Builder
	inEsc := false
	for _, r := range s {
		if inEsc {
			if r == 'm' {
				inEsc = false
			}
			continue
		}
		if r == '\x1b' {
			inEsc = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func sampleTable(opts datatable.Options) *datatable.Table {
	rows := []datatable.Row{
		{"id": "1", "name": "carol", "age": 41, "secret": "x"},
		{"id": "2", "name": "Alice", "age": 30, "secret": "y"},
		{"id": "3", "name": "bob|by", "age": 25, "secret": "z"},
	}
	cols := []datatable.Column{
		{Field: "name", Label: "Name", Options: datatable.ColumnOptions{Sort: true}},
		{Field: "age", Label: "Age", Options: datatable.ColumnOptions{Sort: true}},
		{Field: "secret", Label: "Secret", Options: datatable.ColumnOptions{Display: datatable.Bool(false)}},
	}
	return datatable.NewTable(datatable.NewStore(rows, cols, opts))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, got)

	_, err = ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "table|csv")
}

func TestTextRendersHeaderRowsAndSummary(t *testing.T) {
	tbl := sampleTable(datatable.Options{Pagination: true, RowsPerPage: 2})
	tbl.SortBy("name")
	tbl.SelectRow("2", true)

	out := stripANSI(Text(tbl, PageOptions{NoColor: true}))
	assert.Contains(t, out, "Name "+ArrowUp)
	assert.Contains(t, out, "Age")
	assert.NotContains(t, out, "Secret")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "bob|by")
	assert.NotContains(t, out, "carol", "third row is on page 2")
	assert.Contains(t, out, Checked)
	assert.Contains(t, out, "Rows per page: 2  1-2 of 3  page 1/2")
}

func TestTextHidesCheckboxes(t *testing.T) {
	tbl := sampleTable(datatable.Options{SelectableRowsHideCheckboxes: true})
	out := stripANSI(Text(tbl, PageOptions{NoColor: true}))
	assert.NotContains(t, out, Unchecked)
	assert.NotContains(t, out, "Rows per page")
}

func TestTextNoData(t *testing.T) {
	tbl := datatable.NewTable(datatable.NewStore(nil, []datatable.Column{{Field: "a"}}, datatable.Options{
		TextLabels: datatable.TextLabels{Body: datatable.BodyLabels{NoMatch: "nothing here"}},
	}))
	out := stripANSI(Text(tbl, PageOptions{NoColor: true}))
	assert.Contains(t, out, "nothing here")
}

func TestTextStackedWhenResponsiveAndNarrow(t *testing.T) {
	tbl := sampleTable(datatable.Options{Responsive: true})
	out := stripANSI(Text(tbl, PageOptions{NoColor: true, Width: 40}))
	assert.Contains(t, out, "Name: carol")
	assert.Contains(t, out, "Age : 41")

	wide := stripANSI(Text(tbl, PageOptions{NoColor: true, Width: 120}))
	assert.NotContains(t, wide, "Name: carol")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 0))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "a b", Truncate("a\nb", 10))
}

func TestPageCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatCSV, sampleTable(datatable.Options{}), PageOptions{}))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Age"},
		{"carol", "41"},
		{"Alice", "30"},
		{"bob|by", "25"},
	}, recs)
}

func TestPageJSONKeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatJSON, sampleTable(datatable.Options{}), PageOptions{}))
	assert.Contains(t, buf.String(), `"name": "carol",`)
	assert.Less(t, strings.Index(buf.String(), `"name"`), strings.Index(buf.String(), `"age"`))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, float64(41), decoded[0]["age"])
	assert.NotContains(t, decoded[0], "secret")
}

func TestPageRecordsIgnoreRenderers(t *testing.T) {
	rows := []datatable.Row{{"id": "1", "age": 41}}
	cols := []datatable.Column{{
		Field: "age",
		Label: "Age",
		Options: datatable.ColumnOptions{
			Render: func(v any, _ datatable.Row) string { return fmt.Sprintf("%v yrs", v) },
		},
	}}
	tbl := datatable.NewTable(datatable.NewStore(rows, cols, datatable.Options{}))

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatCSV, tbl, PageOptions{}))
	assert.Equal(t, "Age\n41 yrs\n", buf.String())

	buf.Reset()
	require.NoError(t, Page(&buf, FormatJSON, tbl, PageOptions{}))
	assert.JSONEq(t, `[{"age": 41}]`, buf.String())

	buf.Reset()
	require.NoError(t, Page(&buf, FormatYAML, tbl, PageOptions{}))
	assert.Equal(t, "- age: 41\n", buf.String())
}

func TestPageYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatYAML, sampleTable(datatable.Options{}), PageOptions{}))
	assert.True(t, strings.HasPrefix(buf.String(), "- name: carol\n  age: 41\n"))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 3)
}

func TestMarkdownFlattensMultilineCells(t *testing.T) {
	rows := []datatable.Row{{"id": "1", "note": "first\nsecond\r\nthird"}}
	cols := []datatable.Column{{Field: "note", Label: "Note"}}
	tbl := datatable.NewTable(datatable.NewStore(rows, cols, datatable.Options{}))

	assert.Equal(t, "| Note |\n| --- |\n| first second third |\n", Markdown(tbl))
	assert.Contains(t, string(HTML(tbl)), "<td>first second third</td>")
}

func TestMarkdownAndHTML(t *testing.T) {
	tbl := sampleTable(datatable.Options{})
	md := Markdown(tbl)
	assert.True(t, strings.HasPrefix(md, "| Name | Age |\n| --- | --- |\n"))
	assert.Contains(t, md, `bob\|by`)

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, FormatHTML, tbl, PageOptions{}))
	out := buf.String()
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Name</th>")
	assert.Contains(t, out, "<td>carol</td>")
}

func TestPageUnknownFormat(t *testing.T) {
	err := Page(&bytes.Buffer{}, Format("xml"), sampleTable(datatable.Options{}), PageOptions{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
