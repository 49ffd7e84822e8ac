package datatable

// CellRenderer turns a field value into display text. row is the full record
// the value was read from.
type CellRenderer func(value any, row Row) string

// ColumnOptions are the per-column display switches.
type ColumnOptions struct {
	// Sort makes the header clickable for sorting.
	Sort bool
	// Display hides the column when set to false. nil means visible.
	Display *bool
	// Render overrides the default cell text.
	Render CellRenderer
	// Width is the preferred terminal width; 0 derives it from content.
	Width int
}

// Column describes how one field is labeled, sorted and rendered.
type Column struct {
	Field   string
	Label   string
	Options ColumnOptions
}

// Visible reports whether the column is displayed.
func (c Column) Visible() bool {
	return c.Options.Display == nil || *c.Options.Display
}

// Title returns the header text, falling back to the field name.
func (c Column) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Field
}

// Bool returns a pointer to b, for ColumnOptions.Display.
func Bool(b bool) *bool {
	return &b
}

// InferColumns derives sortable columns from the union of the rows' keys,
// in first-seen order with IDField leading.
func InferColumns(rows []Row) []Column {
	seen := map[string]bool{}
	var fields []string
	for _, row := range rows {
		for _, f := range row.Fields() {
			if seen[f] {
				continue
			}
			seen[f] = true
			fields = append(fields, f)
		}
	}
	if seen[IDField] && len(fields) > 0 && fields[0] != IDField {
		out := []string{IDField}
		for _, f := range fields {
			if f != IDField {
				out = append(out, f)
			}
		}
		fields = out
	}
	cols := make([]Column, len(fields))
	for i, f := range fields {
		cols[i] = Column{Field: f, Label: f, Options: ColumnOptions{Sort: true}}
	}
	return cols
}

// visibleColumns filters out hidden columns.
func visibleColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.Visible() {
			out = append(out, c)
		}
	}
	return out
}
