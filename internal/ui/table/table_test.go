package table

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiPattern.ReplaceAllString(s, "") }

func makeTable(n int, opts datatable.Options) *datatable.Table {
	rows := make([]datatable.Row, n)
	for i := range rows {
		rows[i] = datatable.Row{"id": fmt.Sprintf("r%02d", i+1), "name": fmt.Sprintf("item %d", i+1), "size": n - i}
	}
	cols := []datatable.Column{
		{Field: "id", Label: "ID", Options: datatable.ColumnOptions{Sort: true}},
		{Field: "name", Label: "Name", Options: datatable.ColumnOptions{Sort: true}},
		{Field: "size", Label: "Size", Options: datatable.ColumnOptions{Sort: true}},
		{Field: "secret", Label: "Secret", Options: datatable.ColumnOptions{Display: datatable.Bool(false)}},
	}
	if opts.RowsPerPage == 0 {
		opts.RowsPerPage = 5
	}
	opts.Pagination = true
	return datatable.NewTable(datatable.NewStore(rows, cols, opts))
}

func TestViewShowsCurrentPage(t *testing.T) {
	m := New(makeTable(7, datatable.Options{}))
	m.SetSize(80, 10)
	view := stripANSI(m.View())

	assert.Contains(t, view, "[ ]")
	assert.Contains(t, view, "ID")
	assert.Contains(t, view, "item 5")
	assert.NotContains(t, view, "item 6")
	assert.NotContains(t, view, "Secret", "hidden columns are dropped")

	m.Table().SetPage(2, 5)
	m.Refresh()
	view = stripANSI(m.View())
	assert.Contains(t, view, "item 7")
	assert.NotContains(t, view, "item 1 ")
}

func TestHeaderArrowsAndCheckboxes(t *testing.T) {
	tbl := makeTable(3, datatable.Options{})
	m := New(tbl)
	require.True(t, tbl.SortBy("size"))
	tbl.SelectAll(true)
	m.Refresh()
	view := stripANSI(m.View())
	assert.Contains(t, view, "Size ▲")
	assert.Contains(t, view, "[x]")
	assert.NotContains(t, view, "[ ]")

	require.True(t, tbl.SortBy("size"))
	m.Refresh()
	assert.Contains(t, stripANSI(m.View()), "Size ▼")
}

func TestHiddenCheckboxes(t *testing.T) {
	m := New(makeTable(3, datatable.Options{SelectableRowsHideCheckboxes: true}))
	assert.NotContains(t, stripANSI(m.View()), "[ ]")
}

func TestNoData(t *testing.T) {
	m := New(makeTable(0, datatable.Options{}))
	assert.Contains(t, stripANSI(m.View()), datatable.DefaultNoMatch)
	assert.Nil(t, m.SelectedRow())
}

func TestActiveColumn(t *testing.T) {
	m := New(makeTable(3, datatable.Options{}))
	col, ok := m.ActiveColumn()
	require.True(t, ok)
	assert.Equal(t, "id", col.Field)
	assert.Contains(t, stripANSI(m.View()), "›ID")

	m.MoveActive(1)
	col, _ = m.ActiveColumn()
	assert.Equal(t, "name", col.Field)

	m.MoveActive(10)
	col, _ = m.ActiveColumn()
	assert.Equal(t, "size", col.Field, "stops at the last visible column")
	assert.Equal(t, 2, m.ActiveIndex())

	m.MoveActive(-10)
	assert.Equal(t, 0, m.ActiveIndex())
}

func TestResize(t *testing.T) {
	m := New(makeTable(3, datatable.Options{}))
	assert.False(t, m.Resize(4), "resizing needs ResizableColumns")

	m = New(makeTable(3, datatable.Options{ResizableColumns: true}))
	before := m.columnWidth(m.Table().Header()[0], m.Table().CurrentRows())
	require.True(t, m.Resize(4))
	assert.Equal(t, before+4, m.widths["id"])
	m.MoveActive(1)
	require.True(t, m.Resize(1))
	assert.Contains(t, m.widths, "name")

	require.True(t, m.Resize(-100))
	assert.Equal(t, MinColumnWidth, m.widths["id"])
}

func TestCursorSelection(t *testing.T) {
	m := New(makeTable(3, datatable.Options{}))
	sel := m.SelectedRow()
	require.NotNil(t, sel)
	assert.Equal(t, "r01", sel.ID())

	m.SetCursor(1)
	assert.Equal(t, "r02", m.SelectedRow().ID())

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.LessOrEqual(t, m.Cursor(), 2)
}

func TestCursorClampedAfterRefresh(t *testing.T) {
	tbl := makeTable(7, datatable.Options{})
	m := New(tbl)
	m.SetCursor(4)
	tbl.SetPage(2, 5)
	m.Refresh()
	assert.Equal(t, 1, m.Cursor())
}

func TestStackedLayout(t *testing.T) {
	m := New(makeTable(2, datatable.Options{Responsive: true}))
	m.SetSize(40, 10)
	require.True(t, m.Stacked())
	view := stripANSI(m.View())
	assert.Contains(t, view, "Name: item 1")
	assert.Equal(t, 1, strings.Count(view, "\n\n"), "two cards are separated by one blank line")

	m.SetSize(120, 10)
	assert.False(t, m.Stacked())
}

func TestColorScheme(t *testing.T) {
	tbl := makeTable(2, datatable.Options{Color: datatable.Color{Color: "9", BorderColor: "10"}})
	m := New(tbl)
	m.SetColors(Colors{HeaderFG: lipgloss.Color("12"), CellFG: lipgloss.Color("7"), SelectedBG: lipgloss.Color("8")})
	assert.Equal(t, lipgloss.Color("9"), m.colors.CellFG, "Options.Color wins over the theme")
	assert.Equal(t, lipgloss.Color("10"), m.colors.BorderFG)

	m.SetNoColor(true)
	assert.Contains(t, stripANSI(m.View()), "item 1")
}

func TestFocusAndString(t *testing.T) {
	m := New(makeTable(1, datatable.Options{}))
	assert.True(t, m.Focused())
	m.Blur()
	assert.False(t, m.Focused())
	assert.NotContains(t, stripANSI(m.View()), "›ID")
	m.Focus()
	assert.True(t, m.Focused())
	assert.Contains(t, m.String(), "rows=1")
	assert.Positive(t, m.Height())
	assert.Positive(t, m.Width())
}
