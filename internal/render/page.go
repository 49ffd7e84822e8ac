package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	runewidth "github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// Format is a non-interactive output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// DefaultMaxCellWidth caps cells of columns without an explicit width.
const DefaultMaxCellWidth = 40

// Sort arrows shown in headers.
const (
	ArrowUp   = "▲"
	ArrowDown = "▼"
)

// Checkbox glyphs.
const (
	Checked   = "[x]"
	Unchecked = "[ ]"
)

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		name = string(FormatMarkdown)
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", ErrUnknownFormat, s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

// PageOptions tune the text renderers.
type PageOptions struct {
	NoColor bool
	// Width is the output width; 0 means unknown and disables the stacked
	// responsive layout.
	Width int
	// MaxCellWidth caps cells without a column width; 0 uses DefaultMaxCellWidth.
	MaxCellWidth int
	HeaderColor  string
	BorderColor  string
}

// Page writes the current page of tbl to w in format.
func Page(w io.Writer, format Format, tbl *datatable.Table, opts PageOptions) error {
	switch format {
	case FormatTable, "":
		_, err := io.WriteString(w, Text(tbl, opts)+"\n")
		return err
	case FormatCSV:
		return writeCSV(w, tbl)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records(tbl))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records(tbl)); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(tbl))
		return err
	case FormatHTML:
		_, err := w.Write(HTML(tbl))
		return err
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// HeaderTitle returns the header text of h with its sort arrow.
func HeaderTitle(h datatable.HeaderCell) string {
	switch h.Sort {
	case datatable.SortAscending:
		return h.Column.Title() + " " + ArrowUp
	case datatable.SortDescending:
		return h.Column.Title() + " " + ArrowDown
	}
	return h.Column.Title()
}

// Checkbox returns the glyph for a checkbox state.
func Checkbox(checked bool) string {
	if checked {
		return Checked
	}
	return Unchecked
}

// Truncate shortens s to width display cells with an ellipsis. width <= 0
// leaves s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "…")
}

// Stacked reports whether tbl should use the stacked responsive layout at
// the given width.
func Stacked(tbl *datatable.Table, width int) bool {
	opts := tbl.Store().Options()
	return opts.Responsive && width > 0 && width < opts.ResponsiveMinWidth
}

// Text renders the current page as a bordered table, the no-match label when
// empty, and a pagination summary when pagination is on.
func Text(tbl *datatable.Table, opts PageOptions) string {
	var b strings.Builder
	if Stacked(tbl, opts.Width) {
		b.WriteString(stackedText(tbl, opts))
	} else {
		b.WriteString(gridText(tbl, opts))
	}
	if label, empty := tbl.NoData(); empty {
		b.WriteString("\n")
		b.WriteString(label)
	}
	if tbl.PaginationEnabled() {
		b.WriteString("\n")
		b.WriteString(Summary(tbl))
	}
	return b.String()
}

func cellWidth(col datatable.Column, opts PageOptions) int {
	if col.Options.Width > 0 {
		return col.Options.Width
	}
	if opts.MaxCellWidth > 0 {
		return opts.MaxCellWidth
	}
	return DefaultMaxCellWidth
}

func gridText(tbl *datatable.Table, opts PageOptions) string {
	header := tbl.Header()
	checkboxes := tbl.ShowCheckboxes()

	titles := make([]string, 0, len(header)+1)
	if checkboxes {
		titles = append(titles, Checkbox(tbl.AllSelected()))
	}
	for _, h := range header {
		titles = append(titles, HeaderTitle(h))
	}

	rows := make([][]string, 0, len(tbl.CurrentRows()))
	for _, row := range tbl.CurrentRows() {
		cells := make([]string, 0, len(titles))
		if checkboxes {
			cells = append(cells, Checkbox(tbl.IsSelected(row)))
		}
		for _, h := range header {
			cells = append(cells, Truncate(Cell(h.Column, row), cellWidth(h.Column, opts)))
		}
		rows = append(rows, cells)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	borderStyle := lipgloss.NewStyle()
	if !opts.NoColor {
		if opts.HeaderColor != "" {
			headerStyle = headerStyle.Foreground(lipgloss.Color(opts.HeaderColor))
		}
		if opts.BorderColor != "" {
			borderStyle = borderStyle.Foreground(lipgloss.Color(opts.BorderColor))
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(titles...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func stackedText(tbl *datatable.Table, opts PageOptions) string {
	header := tbl.Header()
	labelWidth := 0
	for _, h := range header {
		labelWidth = max(labelWidth, runewidth.StringWidth(HeaderTitle(h)))
	}
	labelStyle := lipgloss.NewStyle().Bold(true)
	valueWidth := opts.Width - labelWidth - 2

	var cards []string
	for _, row := range tbl.CurrentRows() {
		var lines []string
		if tbl.ShowCheckboxes() {
			lines = append(lines, Checkbox(tbl.IsSelected(row)))
		}
		for _, h := range header {
			label := runewidth.FillRight(HeaderTitle(h), labelWidth)
			lines = append(lines, labelStyle.Render(label)+": "+Truncate(Cell(h.Column, row), valueWidth))
		}
		cards = append(cards, strings.Join(lines, "\n"))
	}
	return strings.Join(cards, "\n\n")
}

// Summary is the one-line pagination caption: "Rows per page: 10  11-20 of
// 23  page 2/3".
func Summary(tbl *datatable.Table) string {
	labels := tbl.Store().Options().TextLabels.Pagination
	total := len(tbl.Store().RowData())
	page := tbl.Page()
	start, end := page.Bounds(total)
	from := start + 1
	if total == 0 {
		from = 0
	}
	return fmt.Sprintf("%s %d  %d-%d %s %d  page %d/%d",
		labels.RowsPerPage, page.PerPage, from, end, labels.DisplayRows, total, page.Page, tbl.PageCount())
}

func writeCSV(w io.Writer, tbl *datatable.Table) error {
	cols := tbl.Store().VisibleColumns()
	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title()
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range tbl.CurrentRows() {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = Cell(c, row)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Markdown renders the current page as a GFM table.
func Markdown(tbl *datatable.Table) string {
	cols := tbl.Store().VisibleColumns()
	if len(cols) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("|")
	for _, h := range tbl.Header() {
		b.WriteString(" " + escapeMarkdown(HeaderTitle(h)) + " |")
	}
	b.WriteString("\n|")
	for range cols {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range tbl.CurrentRows() {
		b.WriteString("|")
		for _, c := range cols {
			b.WriteString(" " + escapeMarkdown(Cell(c, row)) + " |")
		}
		b.WriteString("\n")
	}
	if label, empty := tbl.NoData(); empty {
		b.WriteString("\n" + escapeMarkdown(label) + "\n")
	}
	return b.String()
}

func escapeMarkdown(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.ReplaceAll(s, "|", `\|`)
}

// HTML renders the current page as an HTML table through the markdown renderer.
func HTML(tbl *datatable.Table) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(Markdown(tbl)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
