package datatable

import "github.com/oakwood-commons/dtable/internal/pager"

// Default text labels.
const (
	DefaultNoMatch            = "Sorry, no matching records found"
	DefaultToolTip            = "Sort"
	DefaultRowsPerPageLabel   = "Rows per page:"
	DefaultDisplayRowsLabel   = "of"
	DefaultFirstLabel         = "«"
	DefaultPreviousLabel      = "‹"
	DefaultNextLabel          = "›"
	DefaultLastLabel          = "»"
	DefaultResponsiveMinWidth = 80
)

// DefaultRowsPerPageOptions are the page sizes offered by the pagination widget.
var DefaultRowsPerPageOptions = []int{5, 10, 25, 50}

// Color overrides the table's text, background and border colors. Empty
// values keep the theme's colors. Values are anything lipgloss.Color accepts.
type Color struct {
	Color           string
	BackgroundColor string
	BorderColor     string
}

// BodyLabels are messages shown in the table body.
type BodyLabels struct {
	NoMatch string
	ToolTip string
}

// PaginationLabels are the captions of the pagination widget.
type PaginationLabels struct {
	RowsPerPage string
	DisplayRows string
	First       string
	Previous    string
	Next        string
	Last        string
}

// TextLabels groups all user-visible captions.
type TextLabels struct {
	Body       BodyLabels
	Pagination PaginationLabels
}

// Options are the display options of a table.
type Options struct {
	RowsPerPage        int
	RowsPerPageOptions []int
	Pagination         bool
	// Responsive switches to a stacked label/value layout on narrow widths.
	Responsive bool
	// ResponsiveMinWidth is the width below which the stacked layout applies.
	ResponsiveMinWidth           int
	SelectableRowsHideCheckboxes bool
	ResizableColumns             bool
	Color                        Color
	TextLabels                   TextLabels
	// OnRowClick is called with the clicked row, if set.
	OnRowClick func(Row)
}

// withDefaults fills zero values with the package defaults.
func (o Options) withDefaults() Options {
	if o.RowsPerPage < 1 {
		o.RowsPerPage = pager.DefaultPerPage
	}
	if len(o.RowsPerPageOptions) == 0 {
		o.RowsPerPageOptions = append([]int(nil), DefaultRowsPerPageOptions...)
	}
	if o.ResponsiveMinWidth < 1 {
		o.ResponsiveMinWidth = DefaultResponsiveMinWidth
	}
	b := &o.TextLabels.Body
	if b.NoMatch == "" {
		b.NoMatch = DefaultNoMatch
	}
	if b.ToolTip == "" {
		b.ToolTip = DefaultToolTip
	}
	p := &o.TextLabels.Pagination
	if p.RowsPerPage == "" {
		p.RowsPerPage = DefaultRowsPerPageLabel
	}
	if p.DisplayRows == "" {
		p.DisplayRows = DefaultDisplayRowsLabel
	}
	if p.First == "" {
		p.First = DefaultFirstLabel
	}
	if p.Previous == "" {
		p.Previous = DefaultPreviousLabel
	}
	if p.Next == "" {
		p.Next = DefaultNextLabel
	}
	if p.Last == "" {
		p.Last = DefaultLastLabel
	}
	return o
}
