package datatable

// Change identifies which part of a Store a setter touched.
type Change int

const (
	ChangeRows Change = iota
	ChangeSelection
	ChangeMenu
	ChangeColumns
)

func (c Change) String() string {
	switch c {
	case ChangeRows:
		return "rows"
	case ChangeSelection:
		return "selection"
	case ChangeMenu:
		return "menu"
	case ChangeColumns:
		return "columns"
	}
	return "unknown"
}

// MenuSubItems records which overlay menus are open.
type MenuSubItems struct {
	Filter         bool
	Search         bool
	DisplayColumns bool
}

// Any reports whether any overlay is open.
func (m MenuSubItems) Any() bool {
	return m.Filter || m.Search || m.DisplayColumns
}

// Store is the state shared between a table, its pagination and the
// surrounding menus. It is not safe for concurrent use; mutate it from the
// goroutine that renders.
type Store struct {
	rows          []Row
	columns       []Column
	options       Options
	countSelected int
	menu          MenuSubItems

	nextSub     int
	subscribers map[int]func(Change)
	order       []int
}

// NewStore builds a Store. A nil columns slice is inferred from rows.
func NewStore(rows []Row, columns []Column, opts Options) *Store {
	if columns == nil {
		columns = InferColumns(rows)
	}
	return &Store{
		rows:        rows,
		columns:     columns,
		options:     opts.withDefaults(),
		subscribers: map[int]func(Change){},
	}
}

// RowData returns the current row set. Callers must not modify it.
func (s *Store) RowData() []Row { return s.rows }

// Columns returns all column descriptors, hidden ones included.
func (s *Store) Columns() []Column { return s.columns }

// VisibleColumns returns the displayed columns.
func (s *Store) VisibleColumns() []Column { return visibleColumns(s.columns) }

// Options returns the display options with defaults applied.
func (s *Store) Options() Options { return s.options }

// CountSelectedRows returns the last reported selection count.
func (s *Store) CountSelectedRows() int { return s.countSelected }

// MenuSubItems returns the overlay state.
func (s *Store) MenuSubItems() MenuSubItems { return s.menu }

// Column returns the descriptor for field.
func (s *Store) Column(field string) (Column, bool) {
	for _, c := range s.columns {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

// SetRowData replaces the row set.
func (s *Store) SetRowData(rows []Row) {
	s.rows = rows
	s.notify(ChangeRows)
}

// SetCountSelectedRows records the selection count.
func (s *Store) SetCountSelectedRows(n int) {
	if n < 0 {
		n = 0
	}
	s.countSelected = n
	s.notify(ChangeSelection)
}

// SetShowMenuSubItems replaces the overlay state.
func (s *Store) SetShowMenuSubItems(m MenuSubItems) {
	s.menu = m
	s.notify(ChangeMenu)
}

// SetColumnDisplay shows or hides the column for field. Unknown fields are
// ignored.
func (s *Store) SetColumnDisplay(field string, visible bool) {
	for i := range s.columns {
		if s.columns[i].Field != field {
			continue
		}
		s.columns[i].Options.Display = Bool(visible)
		s.notify(ChangeColumns)
		return
	}
}

// Subscribe registers fn for change notifications and returns a function that
// removes it. Subscribers run in registration order.
func (s *Store) Subscribe(fn func(Change)) func() {
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.order = append(s.order, id)
	return func() {
		delete(s.subscribers, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) notify(c Change) {
	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.subscribers[id]; ok {
			fn(c)
		}
	}
}
