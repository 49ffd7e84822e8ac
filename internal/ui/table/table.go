// Package table renders the current page of a datatable.Table with the
// bubbles table component.
package table

import (
	"fmt"
	"image/color"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/dtable/internal/render"
	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// MinColumnWidth is the narrowest a column can be resized to.
const MinColumnWidth = 3

const checkboxWidth = 3

// Colors are the theme colors the table uses. Nil values keep the bubbles
// defaults.
type Colors struct {
	HeaderFG   color.Color
	HeaderBG   color.Color
	CellFG     color.Color
	CellBG     color.Color
	BorderFG   color.Color
	SelectedFG color.Color
	SelectedBG color.Color
}

// Model draws a datatable.Table. Call Refresh after the table's state
// changes.
type Model struct {
	table  bubtable.Model
	styles bubtable.Styles
	tbl    *datatable.Table

	active int
	widths map[string]int

	width   int
	height  int
	focused bool
	noColor bool
	colors  Colors
}

// New creates a table view over tbl.
func New(tbl *datatable.Table) *Model {
	t := bubtable.New(
		bubtable.WithFocused(true),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left)
	s.Cell = lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
	t.SetStyles(s)

	m := &Model{
		table:   t,
		styles:  s,
		tbl:     tbl,
		widths:  map[string]int{},
		focused: true,
	}
	m.SetSize(80, 10)
	m.applyColorScheme()
	m.Refresh()
	return m
}

// Table returns the table being drawn.
func (m *Model) Table() *datatable.Table { return m.tbl }

// Refresh rebuilds columns and rows from the table's current page.
func (m *Model) Refresh() {
	cols := m.tbl.Store().VisibleColumns()
	if m.active >= len(cols) {
		m.active = max(len(cols)-1, 0)
	}
	header := m.tbl.Header()
	current := m.tbl.CurrentRows()
	checkboxes := m.tbl.ShowCheckboxes()

	columns := make([]bubtable.Column, 0, len(header)+1)
	if checkboxes {
		columns = append(columns, bubtable.Column{Title: render.Checkbox(m.tbl.AllSelected()), Width: checkboxWidth})
	}
	for i, h := range header {
		title := render.HeaderTitle(h)
		if i == m.active && m.focused {
			title = "›" + title
		}
		columns = append(columns, bubtable.Column{Title: title, Width: m.columnWidth(h, current)})
	}

	offset := len(columns) - len(header)
	rows := make([]bubtable.Row, len(current))
	for i, row := range current {
		cells := make(bubtable.Row, 0, len(columns))
		if checkboxes {
			cells = append(cells, render.Checkbox(m.tbl.IsSelected(row)))
		}
		for j, h := range header {
			cells = append(cells, render.Truncate(render.Cell(h.Column, row), columns[j+offset].Width))
		}
		rows[i] = cells
	}

	// Clear rows first: bubbles renders existing rows against the new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	if n := len(rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
	m.applyColorScheme()
}

// columnWidth is the resized width, the configured width, or the widest of
// header and cells capped at render.DefaultMaxCellWidth.
func (m *Model) columnWidth(h datatable.HeaderCell, rows []datatable.Row) int {
	if w, ok := m.widths[h.Column.Field]; ok {
		return w
	}
	if h.Column.Options.Width > 0 {
		return h.Column.Options.Width
	}
	w := runewidth.StringWidth(render.HeaderTitle(h)) + 1
	for _, row := range rows {
		w = max(w, runewidth.StringWidth(render.Cell(h.Column, row)))
	}
	return min(max(w, MinColumnWidth), render.DefaultMaxCellWidth)
}

// ActiveColumn returns the column that sort and resize act on.
func (m *Model) ActiveColumn() (datatable.Column, bool) {
	cols := m.tbl.Store().VisibleColumns()
	if m.active < 0 || m.active >= len(cols) {
		return datatable.Column{}, false
	}
	return cols[m.active], true
}

// ActiveIndex returns the index of the active column among visible columns.
func (m *Model) ActiveIndex() int { return m.active }

// MoveActive shifts the active column by delta, stopping at either end.
func (m *Model) MoveActive(delta int) {
	n := len(m.tbl.Store().VisibleColumns())
	if n == 0 {
		return
	}
	m.active = min(max(m.active+delta, 0), n-1)
	m.Refresh()
}

// Resize widens or narrows the active column by delta. It does nothing
// unless the table allows resizable columns.
func (m *Model) Resize(delta int) bool {
	if !m.tbl.Store().Options().ResizableColumns {
		return false
	}
	col, ok := m.ActiveColumn()
	if !ok {
		return false
	}
	for _, h := range m.tbl.Header() {
		if h.Column.Field == col.Field {
			w := m.columnWidth(h, m.tbl.CurrentRows())
			m.widths[col.Field] = max(w+delta, MinColumnWidth)
		}
	}
	m.Refresh()
	return true
}

// Cursor returns the cursor row on the current page.
func (m *Model) Cursor() int { return m.table.Cursor() }

// SetCursor moves the cursor row.
func (m *Model) SetCursor(pos int) { m.table.SetCursor(pos) }

// SelectedRow returns the row under the cursor, or nil when the page is empty.
func (m *Model) SelectedRow() datatable.Row {
	rows := m.tbl.CurrentRows()
	c := m.Cursor()
	if c < 0 || c >= len(rows) {
		return nil
	}
	return rows[c]
}

// SetSize sets the view dimensions. height counts the header.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(max(height, 2))
}

// Stacked reports whether the responsive card layout is in use.
func (m *Model) Stacked() bool {
	return render.Stacked(m.tbl, m.width)
}

// Focus sets the table focus state.
func (m *Model) Focus() {
	m.focused = true
	m.table.Focus()
	m.Refresh()
}

// Blur removes focus from the table.
func (m *Model) Blur() {
	m.focused = false
	m.table.Blur()
	m.Refresh()
}

// Focused returns true if the table has focus.
func (m *Model) Focused() bool { return m.focused }

// SetNoColor enables/disables color output.
func (m *Model) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets the theme colors. The table's Options.Color entries take
// precedence over them.
func (m *Model) SetColors(c Colors) {
	opt := m.tbl.Store().Options().Color
	if opt.Color != "" {
		c.CellFG = lipgloss.Color(opt.Color)
	}
	if opt.BackgroundColor != "" {
		c.CellBG = lipgloss.Color(opt.BackgroundColor)
	}
	if opt.BorderColor != "" {
		c.BorderFG = lipgloss.Color(opt.BorderColor)
	}
	m.colors = c
	m.applyColorScheme()
}

func (m *Model) applyColorScheme() {
	s := m.styles
	c := m.colors

	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground().UnsetBorderForeground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if c.HeaderFG != nil {
			s.Header = s.Header.Foreground(c.HeaderFG)
		}
		if c.HeaderBG != nil {
			s.Header = s.Header.Background(c.HeaderBG)
		}
		if c.BorderFG != nil {
			s.Header = s.Header.BorderForeground(c.BorderFG)
		}
		if c.CellFG != nil {
			s.Cell = s.Cell.Foreground(c.CellFG)
		}
		if c.CellBG != nil {
			s.Cell = s.Cell.Background(c.CellBG)
		}
		if c.SelectedFG != nil {
			s.Selected = s.Selected.Foreground(c.SelectedFG)
		}
		if c.SelectedBG != nil {
			s.Selected = s.Selected.Background(c.SelectedBG)
		}
	}

	m.table.SetStyles(s)
	m.styles = s
}

// Update forwards cursor movement to the bubbles table.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the page, the no-match label when there are no rows, or the
// stacked cards in the responsive layout.
func (m *Model) View() string {
	if label, empty := m.tbl.NoData(); empty {
		return m.table.View() + "\n" + label
	}
	if m.Stacked() {
		return m.stackedView()
	}
	return m.table.View()
}

func (m *Model) stackedView() string {
	header := m.tbl.Header()
	labelWidth := 0
	for _, h := range header {
		labelWidth = max(labelWidth, runewidth.StringWidth(render.HeaderTitle(h)))
	}
	labelStyle := lipgloss.NewStyle().Bold(true)
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if !m.noColor && m.colors.HeaderFG != nil {
		labelStyle = labelStyle.Foreground(m.colors.HeaderFG)
	}
	valueWidth := max(m.width-labelWidth-2, MinColumnWidth)

	cards := make([]string, 0, len(m.tbl.CurrentRows()))
	for i, row := range m.tbl.CurrentRows() {
		var lines []string
		if m.tbl.ShowCheckboxes() {
			lines = append(lines, render.Checkbox(m.tbl.IsSelected(row)))
		}
		for _, h := range header {
			label := labelStyle.Render(runewidth.FillRight(render.HeaderTitle(h), labelWidth))
			lines = append(lines, label+": "+render.Truncate(render.Cell(h.Column, row), valueWidth))
		}
		card := strings.Join(lines, "\n")
		if i == m.Cursor() {
			card = cursorStyle.Render(card)
		}
		cards = append(cards, card)
	}
	return strings.Join(cards, "\n\n")
}

// Height returns the rendered height of the table (including header).
func (m *Model) Height() int {
	return lipgloss.Height(m.View())
}

// Width returns the rendered width of the table.
func (m *Model) Width() int {
	return lipgloss.Width(m.View())
}

// String returns a string representation for debugging.
func (m *Model) String() string {
	return fmt.Sprintf("TableView[rows=%d, cursor=%d, active=%d, stacked=%t]",
		len(m.tbl.CurrentRows()), m.Cursor(), m.active, m.Stacked())
}
