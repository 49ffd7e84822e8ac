// Package ui is the interactive terminal view of a data table.
package ui

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/dtable/internal/filter"
	"github.com/oakwood-commons/dtable/internal/ui/pagination"
	uitable "github.com/oakwood-commons/dtable/internal/ui/table"
	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// Config configures the interactive view.
type Config struct {
	// AppName is shown in the title line.
	AppName string
	Theme   Theme
	NoColor bool
	// Width and Height force the window size; 0 takes the terminal's.
	Width  int
	Height int
	// Page is the starting page.
	Page int
	// Evaluator compiles CEL filters. Nil creates one on first use.
	Evaluator *filter.Evaluator
	// Query is applied before the first render.
	Query filter.Query
	// Sort is the starting sort. Unknown and unsortable fields are ignored.
	Sort datatable.SortState
	// SelectAll checks every row of the starting page.
	SelectAll bool
	Logger    logr.Logger
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Model is the tea.Model driving a datatable.Table.
type Model struct {
	store *datatable.Store
	table *datatable.Table
	view  *uitable.Model
	pages pagination.Model

	keys KeyMap
	help help.Model

	search       textinput.Model
	filterInput  textinput.Model
	columnCursor int

	// source is the unfiltered data set the query runs against.
	source    []datatable.Row
	query     filter.Query
	evaluator *filter.Evaluator

	theme   Theme
	noColor bool
	appName string

	status     string
	statusKind statusKind
	showHelp   bool

	width  int
	height int

	log         logr.Logger
	unsubscribe func()
}

// NewModel creates the view over tbl. The table's store rows become the
// data set that search and filter narrow.
func NewModel(tbl *datatable.Table, cfg Config) *Model {
	store := tbl.Store()
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = "dtable"
	}
	theme := cfg.Theme
	if theme.HeaderFG == nil {
		theme = fallbackTheme()
	}

	m := &Model{
		store:       store,
		table:       tbl,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		search:      newInput("search"),
		filterInput: newInput(`row.size > 10 && row.name.startsWith("a")`),
		source:      slices.Clone(store.RowData()),
		evaluator:   cfg.Evaluator,
		theme:       theme,
		noColor:     cfg.NoColor,
		appName:     appName,
		width:       80,
		height:      24,
		log:         log,
	}
	opts := store.Options()
	m.pages = pagination.New(len(store.RowData()), tbl.Page().Page, tbl.Page().PerPage,
		opts.RowsPerPageOptions, opts.TextLabels.Pagination, m.onPage)
	m.view = uitable.New(tbl)
	m.applyColorScheme()

	m.unsubscribe = store.Subscribe(func(c datatable.Change) {
		switch c {
		case datatable.ChangeRows, datatable.ChangeColumns, datatable.ChangeSelection:
			m.sync()
		}
	})

	if cfg.Query.Active() {
		m.query = cfg.Query
		if err := m.applyQuery(); err != nil {
			m.setStatus(err.Error(), statusError)
		}
		m.search.SetValue(cfg.Query.Search)
		if cfg.Query.Predicate != nil {
			m.filterInput.SetValue(cfg.Query.Predicate.String())
		}
	}
	if cfg.Sort.Field != "" {
		tbl.SetSort(cfg.Sort.Field, cfg.Sort.Ascending)
	}
	if cfg.Page > 0 {
		tbl.SetPage(cfg.Page, 0)
	}
	if cfg.SelectAll {
		tbl.SelectAll(true)
	}
	m.setSize(cfg.Width, cfg.Height)
	m.sync()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.SetWidth(60)
	ti.Prompt = ""
	return ti
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Table returns the driven table.
func (m *Model) Table() *datatable.Table { return m.table }

// Query returns the active search and filter.
func (m *Model) Query() filter.Query { return m.query }

// onPage is the pagination handler.
func (m *Model) onPage(page, perPage int) {
	m.table.SetPage(page, perPage)
	m.sync()
}

// sync pulls table state into the child components.
func (m *Model) sync() {
	p := m.table.Page()
	m.pages.Sync(len(m.store.RowData()), p.Page, p.PerPage)
	m.view.Refresh()
}

func (m *Model) applyColorScheme() {
	m.view.SetNoColor(m.noColor)
	m.view.SetColors(m.theme.tableColors())

	ps := pagination.DefaultStyles()
	hs := help.New().Styles
	if !m.noColor {
		ps.Label = ps.Label.Foreground(m.theme.FooterFG)
		ps.Active = ps.Active.Foreground(m.theme.PageActive)
		ps.Inactive = ps.Inactive.Foreground(m.theme.PageInactive)
		hs.ShortKey = hs.ShortKey.Foreground(m.theme.HelpKey)
		hs.FullKey = hs.FullKey.Foreground(m.theme.HelpKey)
		hs.ShortDesc = hs.ShortDesc.Foreground(m.theme.HelpValue)
		hs.FullDesc = hs.FullDesc.Foreground(m.theme.HelpValue)
	}
	m.pages.SetStyles(ps)
	m.help.Styles = hs
}

func (m *Model) setStatus(msg string, kind statusKind) {
	m.status = msg
	m.statusKind = kind
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusKind = statusInfo
}

// setSize applies a window size. Zero values keep the current size.
func (m *Model) setSize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
	m.search.SetWidth(max(m.width-4, 10))
	m.filterInput.SetWidth(max(m.width-4, 10))
	m.layout()
}

// layout gives the table whatever height the surrounding chrome leaves.
func (m *Model) layout() {
	chrome := 1 // title
	if m.table.PaginationEnabled() {
		chrome++
	}
	chrome++ // status
	chrome += lipgloss.Height(m.footerView())
	if over := m.overlayView(); over != "" {
		chrome += lipgloss.Height(over)
	}
	m.view.SetSize(m.width, max(m.height-chrome, 3))
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.layout()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseClickMsg:
		m.table.Click()
		return m, nil

	case tea.KeyPressMsg:
		menu := m.store.MenuSubItems()
		switch {
		case menu.Search:
			return m.updateSearch(msg)
		case menu.Filter:
			return m.updateFilter(msg)
		case menu.DisplayColumns:
			if handled, cmd := m.updateColumnsMenu(msg); handled {
				return m, cmd
			}
		}
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help, m.keys.Close):
				m.showHelp = false
			}
			return m, nil
		}
		return m.updateTable(msg)
	}
	return m, nil
}

// updateTable handles keys aimed at the table itself. Every such key counts
// as a click inside the table and closes open overlays first.
func (m *Model) updateTable(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.table.Click()
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.showHelp = true
	case key.Matches(msg, k.Close):
		m.clearStatus()
	case key.Matches(msg, k.Up, k.Down):
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	case key.Matches(msg, k.Left):
		m.view.MoveActive(-1)
	case key.Matches(msg, k.Right):
		m.view.MoveActive(1)
	case key.Matches(msg, k.Sort):
		m.sortActive()
	case key.Matches(msg, k.Toggle):
		m.table.ToggleRowAt(m.view.Cursor())
	case key.Matches(msg, k.SelectAll):
		m.table.SelectAll(!m.table.AllSelected())
	case key.Matches(msg, k.Click):
		m.clickRow()
	case key.Matches(msg, k.Copy):
		m.copyRow()
	case key.Matches(msg, k.NextPage):
		m.pages.Next()
	case key.Matches(msg, k.PrevPage):
		m.pages.Previous()
	case key.Matches(msg, k.FirstPage):
		m.pages.First()
	case key.Matches(msg, k.LastPage):
		m.pages.Last()
	case key.Matches(msg, k.MorePerPage):
		m.pages.CycleRowsPerPage(1)
	case key.Matches(msg, k.LessPerPage):
		m.pages.CycleRowsPerPage(-1)
	case key.Matches(msg, k.Widen):
		m.resize(2)
	case key.Matches(msg, k.Narrow):
		m.resize(-2)
	case key.Matches(msg, k.Search):
		return m, m.openInput(datatable.MenuSubItems{Search: true})
	case key.Matches(msg, k.Filter):
		return m, m.openInput(datatable.MenuSubItems{Filter: true})
	case key.Matches(msg, k.Columns):
		m.columnCursor = 0
		m.store.SetShowMenuSubItems(datatable.MenuSubItems{DisplayColumns: true})
	}
	m.view.Refresh()
	return m, nil
}

func (m *Model) sortActive() {
	col, ok := m.view.ActiveColumn()
	if !ok {
		return
	}
	if !m.table.SortBy(col.Field) {
		m.setStatus(fmt.Sprintf("column %q is not sortable", col.Title()), statusError)
		return
	}
	m.clearStatus()
}

func (m *Model) clickRow() {
	row := m.view.SelectedRow()
	if row == nil || !m.table.ClickRow(m.view.Cursor()) {
		return
	}
	id := row.ID()
	if id == "" {
		id = fmt.Sprintf("row %d", m.view.Cursor()+1)
	}
	m.setStatus("clicked "+id, statusSuccess)
}

// copyRow puts the cursor row on the clipboard as JSON.
func (m *Model) copyRow() {
	row := m.view.SelectedRow()
	if row == nil {
		return
	}
	data, err := json.Marshal(map[string]any(row))
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	if err := CopyToClipboard(string(data)); err != nil {
		m.setStatus("copy failed: "+err.Error(), statusError)
		return
	}
	m.setStatus("copied row to clipboard", statusSuccess)
}

func (m *Model) resize(delta int) {
	if !m.view.Resize(delta) {
		m.setStatus("column resizing is disabled", statusError)
	}
}

func (m *Model) openInput(menu datatable.MenuSubItems) tea.Cmd {
	m.store.SetShowMenuSubItems(menu)
	if menu.Search {
		m.search.CursorEnd()
		return m.search.Focus()
	}
	m.filterInput.CursorEnd()
	return m.filterInput.Focus()
}

// closeOverlays is the same as clicking the table.
func (m *Model) closeOverlays() {
	m.search.Blur()
	m.filterInput.Blur()
	m.table.Click()
}

// updateSearch edits the search term and applies it as it changes.
func (m *Model) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.closeOverlays()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != m.query.Search {
		m.query.Search = term
		if err := m.applyQuery(); err != nil {
			m.setStatus(err.Error(), statusError)
		}
	}
	return m, cmd
}

// updateFilter edits the CEL filter and applies it on enter. An empty
// expression clears the filter.
func (m *Model) updateFilter(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeOverlays()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		if err := m.setFilter(m.filterInput.Value()); err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		m.closeOverlays()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// setFilter compiles expr and applies it with the current search.
func (m *Model) setFilter(expr string) error {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		m.query.Predicate = nil
		m.clearStatus()
		return m.applyQuery()
	}
	if m.evaluator == nil {
		ev, err := filter.NewEvaluator()
		if err != nil {
			return err
		}
		m.evaluator = ev
	}
	pred, err := m.evaluator.Compile(expr)
	if err != nil {
		return err
	}
	prev := m.query.Predicate
	m.query.Predicate = pred
	if err := m.applyQuery(); err != nil {
		m.query.Predicate = prev
		return err
	}
	m.setStatus(fmt.Sprintf("filter matched %d of %d rows", len(m.store.RowData()), len(m.source)), statusSuccess)
	return nil
}

// applyQuery narrows the data set, writes it to the store and keeps the
// active sort.
func (m *Model) applyQuery() error {
	rows, err := m.query.Apply(m.source, m.store.Columns())
	if err != nil {
		return err
	}
	m.store.SetRowData(rows)
	m.table.Resort()
	m.log.V(1).Info("query applied", "search", m.query.Search, "filter", m.query.Predicate != nil, "rows", len(rows))
	return nil
}

// updateColumnsMenu moves through the column list and toggles visibility.
// Keys it does not own fall through to the table, which closes the menu.
func (m *Model) updateColumnsMenu(msg tea.KeyPressMsg) (bool, tea.Cmd) {
	cols := m.store.Columns()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.columnCursor = max(m.columnCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.columnCursor = min(m.columnCursor+1, max(len(cols)-1, 0))
	case key.Matches(msg, m.keys.Toggle):
		if m.columnCursor < len(cols) {
			c := cols[m.columnCursor]
			if c.Visible() && len(m.store.VisibleColumns()) == 1 {
				m.setStatus("at least one column must stay visible", statusError)
				return true, nil
			}
			m.store.SetColumnDisplay(c.Field, !c.Visible())
		}
	case key.Matches(msg, m.keys.Close, m.keys.Click, m.keys.Columns):
		m.closeOverlays()
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render assembles the screen.
func (m *Model) render() string {
	parts := []string{m.titleView()}
	if over := m.overlayView(); over != "" {
		parts = append(parts, over)
	}
	if m.showHelp {
		parts = append(parts, m.helpView())
	} else {
		parts = append(parts, m.view.View())
	}
	if m.table.PaginationEnabled() {
		parts = append(parts, m.pages.View())
	}
	parts = append(parts, m.statusView(), m.footerView())
	out := strings.Join(parts, "\n")
	if m.noColor {
		out = stripANSIExceptInverse(out)
	}
	return out
}
