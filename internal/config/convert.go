package config

import (
	"github.com/oakwood-commons/dtable/internal/render"
	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// BuildColumns builds the column descriptors. It returns nil when none are
// configured so the store infers them from the rows.
func (t TableConfig) BuildColumns() ([]datatable.Column, error) {
	if len(t.Columns) == 0 {
		return nil, nil
	}
	cols := make([]datatable.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		col := datatable.Column{
			Field: c.Field,
			Label: c.Label,
			Options: datatable.ColumnOptions{
				Sort:    c.Sort == nil || *c.Sort,
				Display: c.Display,
				Width:   c.Width,
			},
		}
		if c.Render != "" {
			fn, err := render.Template(c.Field, c.Render)
			if err != nil {
				return nil, err
			}
			col.Options.Render = fn
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// Apply returns base with every set option overridden.
func (o OptionsConfig) Apply(base datatable.Options) datatable.Options {
	if o.RowsPerPage != nil {
		base.RowsPerPage = *o.RowsPerPage
	}
	if len(o.RowsPerPageOptions) > 0 {
		base.RowsPerPageOptions = append([]int(nil), o.RowsPerPageOptions...)
	}
	if o.Pagination != nil {
		base.Pagination = *o.Pagination
	}
	if o.Responsive != nil {
		base.Responsive = *o.Responsive
	}
	if o.ResponsiveMinWidth != nil {
		base.ResponsiveMinWidth = *o.ResponsiveMinWidth
	}
	if o.SelectableRowsHideCheckboxes != nil {
		base.SelectableRowsHideCheckboxes = *o.SelectableRowsHideCheckboxes
	}
	if o.ResizableColumns != nil {
		base.ResizableColumns = *o.ResizableColumns
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	b, p := &base.TextLabels.Body, &base.TextLabels.Pagination
	set(&b.NoMatch, o.TextLabels.Body.NoMatch)
	set(&b.ToolTip, o.TextLabels.Body.ToolTip)
	set(&p.First, o.TextLabels.Pagination.First)
	set(&p.Previous, o.TextLabels.Pagination.Previous)
	set(&p.Next, o.TextLabels.Pagination.Next)
	set(&p.Last, o.TextLabels.Pagination.Last)
	set(&p.RowsPerPage, o.TextLabels.Pagination.RowsPerPage)
	set(&p.DisplayRows, o.TextLabels.Pagination.DisplayRows)
	return base
}
