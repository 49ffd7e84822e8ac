package ui

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/dtable/internal/render"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansi.Strip(s) }

// stripANSIExceptInverse keeps reverse video so the cursor row stays visible
// without color.
func stripANSIExceptInverse(s string) string {
	return ansiRegexp.ReplaceAllStringFunc(s, func(seq string) string {
		switch seq {
		case "\x1b[7m", "\x1b[27m", "\x1b[0m", "\x1b[m":
			return seq
		default:
			return ""
		}
	})
}

// fg is a foreground style, plain when color is off.
func (m *Model) fg(c color.Color) lipgloss.Style {
	if m.noColor || c == nil {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// titleView is "name  23 rows (of 40)".
func (m *Model) titleView() string {
	shown, total := len(m.store.RowData()), len(m.source)
	count := fmt.Sprintf("%d rows", shown)
	if m.query.Active() {
		count = fmt.Sprintf("%d of %d rows", shown, total)
	}
	return m.fg(m.theme.HeaderFG).Bold(true).Render(m.appName) + "  " + m.fg(m.theme.FooterFG).Render(count)
}

// overlayView renders the open menu sub-item, if any.
func (m *Model) overlayView() string {
	menu := m.store.MenuSubItems()
	input := lipgloss.NewStyle()
	if !m.noColor {
		input = input.Foreground(m.theme.InputFG).Background(m.theme.InputBG)
	}
	switch {
	case menu.Search:
		return input.Render("/ " + m.search.View())
	case menu.Filter:
		return input.Render("filter: " + m.filterInput.View())
	case menu.DisplayColumns:
		return m.columnsMenuView()
	}
	return ""
}

func (m *Model) columnsMenuView() string {
	cols := m.store.Columns()
	lines := make([]string, 0, len(cols)+1)
	lines = append(lines, m.fg(m.theme.HeaderFG).Bold(true).Render("Show columns"))
	for i, c := range cols {
		line := render.Checkbox(c.Visible()) + " " + c.Title()
		if i == m.columnCursor {
			line = lipgloss.NewStyle().Reverse(true).Render(line)
		}
		lines = append(lines, line)
	}
	box := lipgloss.NewStyle().
		Border(borderForStyle(m.theme.BorderStyle)).
		Padding(0, 1)
	if !m.noColor {
		box = box.BorderForeground(m.theme.BorderColor)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// statusView shows the last message, or the selection count, the active
// column with its sort tooltip and the active query.
func (m *Model) statusView() string {
	if m.status != "" {
		c := m.theme.StatusColor
		switch m.statusKind {
		case statusError:
			c = m.theme.StatusError
		case statusSuccess:
			c = m.theme.StatusSuccess
		}
		return m.fg(c).Render(m.truncate(m.status))
	}

	var parts []string
	if n := m.store.CountSelectedRows(); n > 0 {
		parts = append(parts, m.fg(m.theme.CheckedColor).Render(fmt.Sprintf("%d selected", n)))
	}
	if col, ok := m.view.ActiveColumn(); ok {
		part := "column: " + m.fg(m.theme.ActiveColumn).Render(col.Title())
		if col.Options.Sort {
			part += " (" + m.store.Options().TextLabels.Body.ToolTip + ")"
		}
		parts = append(parts, part)
	}
	if m.query.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.query.Search))
	}
	if m.query.Predicate != nil {
		parts = append(parts, "filter: "+m.query.Predicate.String())
	}
	return m.fg(m.theme.StatusColor).Render(m.truncate(strings.Join(parts, "  ·  ")))
}

func (m *Model) truncate(s string) string {
	if ansi.StringWidth(s) <= m.width {
		return s
	}
	return ansi.Truncate(s, m.width, "…")
}

func (m *Model) helpView() string {
	h := m.help
	h.ShowAll = true
	return h.View(m.keys)
}

func (m *Model) footerView() string {
	if m.showHelp {
		return m.fg(m.theme.FooterFG).Render("press ? or esc to close help")
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
