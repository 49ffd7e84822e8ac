package datatable

import (
	"fmt"
	"slices"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/dtable/internal/pager"
)

// SortIndicator is the sort marker shown on a header.
type SortIndicator string

const (
	SortNone       SortIndicator = "none"
	SortAscending  SortIndicator = "ascending"
	SortDescending SortIndicator = "descending"
)

// SortState is the active single-column sort. An empty Field means unsorted.
type SortState struct {
	Field     string
	Ascending bool
}

// HeaderCell is one visible header with its sort marker.
type HeaderCell struct {
	Column  Column
	Sort    SortIndicator
	ToolTip string
}

// Table is the view state over a Store: sort, page and selection.
type Table struct {
	store    *Store
	page     pager.Config
	sort     SortState
	current  []Row
	selected map[string]Row
	log      logr.Logger

	unsubscribe func()
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for V(1) state-change logs.
func WithLogger(lgr logr.Logger) Option {
	return func(t *Table) {
		t.log = lgr
	}
}

// WithPage starts the table on the given page.
func WithPage(page int) Option {
	return func(t *Table) {
		if page > 0 {
			t.page.Page = page
		}
	}
}

// NewTable creates a Table bound to store. It re-derives its page whenever
// the store's rows change; call Close to detach it.
func NewTable(store *Store, opts ...Option) *Table {
	t := &Table{
		store:    store,
		page:     pager.New(store.Options().RowsPerPage),
		selected: map[string]Row{},
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.unsubscribe = store.Subscribe(func(c Change) {
		if c == ChangeRows {
			t.paginate()
			t.recount()
		}
	})
	t.paginate()
	return t
}

// Close detaches the table from its store.
func (t *Table) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

// Store returns the shared store.
func (t *Table) Store() *Store { return t.store }

// Sort returns the active sort.
func (t *Table) Sort() SortState { return t.sort }

// SortBy sorts the full row set by field and writes the sorted copy back to
// the store. Repeated calls on the same field toggle the direction; a new
// field starts ascending. It reports false, doing nothing, for unknown or
// non-sortable columns.
func (t *Table) SortBy(field string) bool {
	asc := true
	if t.sort.Field == field {
		asc = !t.sort.Ascending
	}
	return t.SetSort(field, asc)
}

// SetSort sorts by field in the given direction without toggling.
func (t *Table) SetSort(field string, ascending bool) bool {
	col, ok := t.store.Column(field)
	if !ok || !col.Options.Sort {
		return false
	}
	t.sort = SortState{Field: field, Ascending: ascending}
	t.store.SetRowData(sortRows(t.store.RowData(), field, ascending))
	t.log.V(1).Info("sorted rows", "field", field, "ascending", ascending, "rows", len(t.store.RowData()))
	return true
}

// Resort re-applies the active sort without toggling it. Use it after the
// row set was replaced, e.g. by a filter.
func (t *Table) Resort() {
	if t.sort.Field == "" {
		return
	}
	t.store.SetRowData(sortRows(t.store.RowData(), t.sort.Field, t.sort.Ascending))
}

// sortRows returns a sorted copy of rows. Equal keys keep their order.
func sortRows(rows []Row, field string, asc bool) []Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Row) int {
		av, _ := a.Get(field)
		bv, _ := b.Get(field)
		c := Compare(av, bv)
		if !asc {
			c = -c
		}
		return c
	})
	return out
}

// PaginationEnabled reports whether rows are split into pages.
func (t *Table) PaginationEnabled() bool { return t.store.Options().Pagination }

// Page returns the current page position.
func (t *Table) Page() pager.Config { return t.page }

// PageCount returns the number of pages of the current row set.
func (t *Table) PageCount() int {
	if !t.PaginationEnabled() {
		return 1
	}
	return t.page.PageCount(len(t.store.RowData()))
}

// SetPage moves to page with the given page size. This is the handler given
// to the pagination widget. A change of page size while off page 1 goes to
// page 1 instead of the requested page.
func (t *Table) SetPage(page, perPage int) {
	if page > 0 {
		t.page.Page = page
	}
	if perPage > 0 && perPage != t.page.PerPage {
		t.page = t.page.WithPerPage(perPage)
	}
	t.paginate()
	t.log.V(1).Info("page changed", "page", t.page.Page, "perPage", t.page.PerPage)
}

// SetRowsPerPage changes the page size, returning to page 1.
func (t *Table) SetRowsPerPage(n int) {
	t.SetPage(t.page.Page, n)
}

// paginate derives the current window from the store rows.
func (t *Table) paginate() {
	rows := t.store.RowData()
	if !t.PaginationEnabled() {
		t.current = slices.Clone(rows)
		return
	}
	t.page = t.page.Clamp(len(rows))
	t.current = pager.Window(t.page, rows)
}

// CurrentRows returns the rows of the current page.
func (t *Table) CurrentRows() []Row { return t.current }

// Header returns the visible columns with their sort markers.
func (t *Table) Header() []HeaderCell {
	cols := t.store.VisibleColumns()
	tip := t.store.Options().TextLabels.Body.ToolTip
	out := make([]HeaderCell, len(cols))
	for i, c := range cols {
		cell := HeaderCell{Column: c, Sort: SortNone}
		if c.Options.Sort {
			cell.ToolTip = tip
		}
		if c.Field == t.sort.Field {
			cell.Sort = SortDescending
			if t.sort.Ascending {
				cell.Sort = SortAscending
			}
		}
		out[i] = cell
	}
	return out
}

// NoData returns the no-match label and true when the row set is empty.
func (t *Table) NoData() (string, bool) {
	if len(t.store.RowData()) > 0 {
		return "", false
	}
	return t.store.Options().TextLabels.Body.NoMatch, true
}

// ShowCheckboxes reports whether selection checkboxes are rendered.
func (t *Table) ShowCheckboxes() bool {
	return !t.store.Options().SelectableRowsHideCheckboxes
}

// SelectAll checks or clears every rendered row checkbox and reports the
// count upward: the number of rendered checkboxes, or 0 when cleared.
func (t *Table) SelectAll(checked bool) {
	if !t.ShowCheckboxes() {
		return
	}
	clear(t.selected)
	if checked {
		for _, row := range t.current {
			t.selected[rowKey(row)] = row
		}
	}
	t.store.SetCountSelectedRows(t.countSelected())
}

// SelectRow checks or clears the row with the given id on the current page.
func (t *Table) SelectRow(id string, checked bool) {
	for i, row := range t.current {
		if row.ID() == id {
			t.SelectRowAt(i, checked)
			return
		}
	}
}

// SelectRowAt checks or clears the row at index of the current page.
func (t *Table) SelectRowAt(index int, checked bool) {
	if !t.ShowCheckboxes() || index < 0 || index >= len(t.current) {
		return
	}
	row := t.current[index]
	if checked {
		t.selected[rowKey(row)] = row
	} else {
		delete(t.selected, rowKey(row))
	}
	t.store.SetCountSelectedRows(t.countSelected())
}

// countSelected counts checked rows of the current row set. Rows narrowed
// away by a filter stay checked but are not counted.
func (t *Table) countSelected() int {
	n := 0
	for _, row := range t.store.RowData() {
		if t.IsSelected(row) {
			n++
		}
	}
	return n
}

// recount reports the selection count again after the row set changed.
func (t *Table) recount() {
	if n := t.countSelected(); n != t.store.CountSelectedRows() {
		t.store.SetCountSelectedRows(n)
	}
}

// ToggleRowAt flips the checkbox of the row at index of the current page.
func (t *Table) ToggleRowAt(index int) {
	if index < 0 || index >= len(t.current) {
		return
	}
	t.SelectRowAt(index, !t.IsSelected(t.current[index]))
}

// IsSelected reports whether row is checked.
func (t *Table) IsSelected(row Row) bool {
	_, ok := t.selected[rowKey(row)]
	return ok
}

// AllSelected reports whether every row of the current page is checked.
func (t *Table) AllSelected() bool {
	if len(t.current) == 0 {
		return false
	}
	for _, row := range t.current {
		if !t.IsSelected(row) {
			return false
		}
	}
	return true
}

// Selected returns the checked rows of the current row set in row-set
// order. Its length always matches Store.CountSelectedRows.
func (t *Table) Selected() []Row {
	out := make([]Row, 0, len(t.selected))
	for _, row := range t.store.RowData() {
		if t.IsSelected(row) {
			out = append(out, row)
		}
	}
	return out
}

// Click closes any open overlay menu.
func (t *Table) Click() {
	if !t.store.MenuSubItems().Any() {
		return
	}
	t.store.SetShowMenuSubItems(MenuSubItems{})
}

// ClickRow invokes Options.OnRowClick with the row at index of the current
// page. It reports whether a row was found.
func (t *Table) ClickRow(index int) bool {
	if index < 0 || index >= len(t.current) {
		return false
	}
	if fn := t.store.Options().OnRowClick; fn != nil {
		fn(t.current[index])
	}
	return true
}

// String returns a debug summary.
func (t *Table) String() string {
	return fmt.Sprintf("Table[rows=%d, page=%d/%d, perPage=%d, sort=%q asc=%t, selected=%d]",
		len(t.store.RowData()), t.page.Page, t.PageCount(), t.page.PerPage, t.sort.Field, t.sort.Ascending, len(t.selected))
}

// rowKey identifies a row for selection by its map identity, which sorting,
// paging and filtering preserve. Rows sharing an id select independently.
func rowKey(r Row) string {
	return fmt.Sprintf("%p", r)
}
