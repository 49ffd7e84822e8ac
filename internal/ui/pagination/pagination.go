// Package pagination is the page navigation bar shown under the table.
package pagination

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/paginator"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// Handler receives every page or page-size change. page is 1-based.
type Handler func(page, perPage int)

// Styles styles the bar.
type Styles struct {
	Label    lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// DefaultStyles leaves text unstyled except for dimmed disabled arrows.
func DefaultStyles() Styles {
	return Styles{
		Label:    lipgloss.NewStyle(),
		Active:   lipgloss.NewStyle().Bold(true),
		Inactive: lipgloss.NewStyle().Faint(true),
	}
}

// Model tracks the page position of a row set of a given size.
type Model struct {
	paginator paginator.Model
	total     int
	options   []int
	labels    datatable.PaginationLabels
	handler   Handler
	styles    Styles
}

// New creates a bar for total rows at page with perPage rows per page.
func New(total, page, perPage int, options []int, labels datatable.PaginationLabels, handler Handler) Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "%d/%d"
	m := Model{
		paginator: p,
		options:   slices.Clone(options),
		labels:    labels,
		handler:   handler,
		styles:    DefaultStyles(),
	}
	m.Sync(total, page, perPage)
	return m
}

// Sync replaces the position with the table's, without calling the handler.
func (m *Model) Sync(total, page, perPage int) {
	if perPage < 1 {
		perPage = 1
	}
	m.total = max(total, 0)
	m.paginator.PerPage = perPage
	m.paginator.TotalPages = 1
	if m.total > 0 {
		m.paginator.SetTotalPages(m.total)
	}
	m.paginator.Page = min(max(page, 1), m.paginator.TotalPages) - 1
}

// SetStyles replaces the bar styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// Page returns the 1-based current page.
func (m Model) Page() int { return m.paginator.Page + 1 }

// PageCount returns the number of pages, at least 1.
func (m Model) PageCount() int { return m.paginator.TotalPages }

// PerPage returns the page size.
func (m Model) PerPage() int { return m.paginator.PerPage }

// CanPrevious reports whether First and Previous would move.
func (m Model) CanPrevious() bool { return !m.paginator.OnFirstPage() }

// CanNext reports whether Next and Last would move.
func (m Model) CanNext() bool { return !m.paginator.OnLastPage() }

// First moves to page 1.
func (m *Model) First() { m.goTo(1) }

// Previous moves back one page.
func (m *Model) Previous() { m.goTo(m.Page() - 1) }

// Next moves forward one page.
func (m *Model) Next() { m.goTo(m.Page() + 1) }

// Last moves to the final page.
func (m *Model) Last() { m.goTo(m.PageCount()) }

// goTo moves to page and notifies the handler. Out-of-range and same-page
// moves do nothing.
func (m *Model) goTo(page int) {
	if page < 1 || page > m.PageCount() || page == m.Page() {
		return
	}
	m.paginator.Page = page - 1
	m.notify(page, m.PerPage())
}

// CycleRowsPerPage steps through the page-size choices by delta, wrapping at
// either end, and returns to page 1. A size not in the choices starts from
// the first one.
func (m *Model) CycleRowsPerPage(delta int) {
	if len(m.options) == 0 || delta == 0 {
		return
	}
	idx := slices.Index(m.options, m.PerPage())
	next := 0
	if idx >= 0 {
		n := len(m.options)
		next = ((idx+delta)%n + n) % n
	}
	perPage := m.options[next]
	if perPage == m.PerPage() {
		return
	}
	m.Sync(m.total, 1, perPage)
	m.notify(1, perPage)
}

func (m *Model) notify(page, perPage int) {
	if m.handler != nil {
		m.handler(page, perPage)
	}
}

// Range returns the 1-based bounds of the current page, 0-0 when empty.
func (m Model) Range() (from, to int) {
	if m.total == 0 {
		return 0, 0
	}
	start, end := m.paginator.GetSliceBounds(m.total)
	return start + 1, end
}

// View renders "Rows per page: 10   11-20 of 23   « ‹ 2/3 › »".
func (m Model) View() string {
	from, to := m.Range()
	arrow := func(label string, enabled bool) string {
		if enabled {
			return m.styles.Active.Render(label)
		}
		return m.styles.Inactive.Render(label)
	}
	parts := []string{
		m.styles.Label.Render(fmt.Sprintf("%s %d", m.labels.RowsPerPage, m.PerPage())),
		m.styles.Label.Render(fmt.Sprintf("%d-%d %s %d", from, to, m.labels.DisplayRows, m.total)),
		strings.Join([]string{
			arrow(m.labels.First, m.CanPrevious()),
			arrow(m.labels.Previous, m.CanPrevious()),
			m.styles.Label.Render(m.paginator.View()),
			arrow(m.labels.Next, m.CanNext()),
			arrow(m.labels.Last, m.CanNext()),
		}, " "),
	}
	return strings.Join(parts, "   ")
}
