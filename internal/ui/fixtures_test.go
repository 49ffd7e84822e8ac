package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// press builds a key press for a key name as tea.KeyPressMsg.String
// reports it.
func press(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func send(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(press(k))
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// testRows returns n rows with ids r01.., names "item N" and sizes 1..n.
func testRows(n int) []datatable.Row {
	out := make([]datatable.Row, n)
	for i := range out {
		out[i] = datatable.Row{"id": fmt.Sprintf("r%02d", i+1), "name": fmt.Sprintf("item %d", i+1), "size": i + 1}
	}
	return out
}

func testColumns() []datatable.Column {
	return []datatable.Column{
		{Field: "id", Label: "ID", Options: datatable.ColumnOptions{Sort: true}},
		{Field: "name", Label: "Name", Options: datatable.ColumnOptions{Sort: false}},
		{Field: "size", Label: "Size", Options: datatable.ColumnOptions{Sort: true}},
	}
}

func newTestModel(t *testing.T, n int, opts datatable.Options) *Model {
	t.Helper()
	opts.Pagination = true
	if opts.RowsPerPage == 0 {
		opts.RowsPerPage = 5
	}
	tbl := datatable.NewTable(datatable.NewStore(testRows(n), testColumns(), opts))
	m := NewModel(tbl, Config{AppName: "test", NoColor: true, Width: 100, Height: 30})
	t.Cleanup(func() {
		m.Close()
		tbl.Close()
	})
	return m
}

func rowIDs(rs []datatable.Row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID()
	}
	return out
}

func viewText(m *Model) string {
	return stripANSI(fmt.Sprint(m.View().Content))
}

func containsLine(view, want string) bool {
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}
