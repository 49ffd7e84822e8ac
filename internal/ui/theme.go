package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/dtable/internal/config"
	uitable "github.com/oakwood-commons/dtable/internal/ui/table"
)

// Theme defines colors and styles used across the UI.
type Theme struct {
	HeaderFG      color.Color // table header text
	HeaderBG      color.Color // table header background
	CellFG        color.Color // cell text
	BorderColor   color.Color // header rule and frame
	BorderStyle   string      // normal|rounded
	SelectedFG    color.Color // cursor row foreground
	SelectedBG    color.Color // cursor row background
	ActiveColumn  color.Color // active column name in the status bar
	CheckedColor  color.Color // selected-count text
	InputFG       color.Color // search/filter input text
	InputBG       color.Color // search/filter input background
	StatusColor   color.Color
	StatusError   color.Color
	StatusSuccess color.Color
	FooterFG      color.Color
	HelpKey       color.Color
	HelpValue     color.Color
	PageActive    color.Color // enabled pagination arrows
	PageInactive  color.Color // disabled pagination arrows
}

// fallbackTheme is used when a theme leaves fields empty.
func fallbackTheme() Theme {
	return Theme{
		HeaderFG:      lipgloss.Color("81"),
		HeaderBG:      lipgloss.Color("236"),
		CellFG:        lipgloss.Color("250"),
		BorderColor:   lipgloss.Color("238"),
		BorderStyle:   "normal",
		SelectedFG:    lipgloss.Color("250"),
		SelectedBG:    lipgloss.Color("24"),
		ActiveColumn:  lipgloss.Color("214"),
		CheckedColor:  lipgloss.Color("114"),
		InputFG:       lipgloss.Color("246"),
		InputBG:       lipgloss.Color("236"),
		StatusColor:   lipgloss.Color("81"),
		StatusError:   lipgloss.Color("203"),
		StatusSuccess: lipgloss.Color("114"),
		FooterFG:      lipgloss.Color("244"),
		HelpKey:       lipgloss.Color("81"),
		HelpValue:     lipgloss.Color("245"),
		PageActive:    lipgloss.Color("252"),
		PageInactive:  lipgloss.Color("238"),
	}
}

// ThemeFromConfig builds a Theme, keeping fallback colors for empty fields.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	th := fallbackTheme()
	set := func(val config.ColorValue, dst *color.Color) {
		if val != "" {
			*dst = lipgloss.Color(string(val))
		}
	}
	set(cfg.HeaderFG, &th.HeaderFG)
	set(cfg.HeaderBG, &th.HeaderBG)
	set(cfg.CellFG, &th.CellFG)
	set(cfg.BorderColor, &th.BorderColor)
	if cfg.BorderStyle != "" {
		th.BorderStyle = cfg.BorderStyle
	}
	set(cfg.SelectedFG, &th.SelectedFG)
	set(cfg.SelectedBG, &th.SelectedBG)
	set(cfg.ActiveColumn, &th.ActiveColumn)
	set(cfg.CheckedColor, &th.CheckedColor)
	set(cfg.InputFG, &th.InputFG)
	set(cfg.InputBG, &th.InputBG)
	set(cfg.StatusColor, &th.StatusColor)
	set(cfg.StatusError, &th.StatusError)
	set(cfg.StatusSuccess, &th.StatusSuccess)
	set(cfg.FooterFG, &th.FooterFG)
	set(cfg.HelpKey, &th.HelpKey)
	set(cfg.HelpValue, &th.HelpValue)
	set(cfg.PageActive, &th.PageActive)
	set(cfg.PageInactive, &th.PageInactive)
	th.BorderStyle = normalizeBorderStyle(th.BorderStyle)
	return th
}

// ThemeSelectionError reports an unknown theme name.
type ThemeSelectionError struct {
	Selected  string
	Available []string
	Default   string
}

func (e ThemeSelectionError) Error() string {
	return fmt.Sprintf("unknown theme %q (available: %s; default: %s)",
		e.Selected, strings.Join(e.Available, ", "), e.Default)
}

// SelectTheme resolves name against the configured themes. An empty name
// selects ui.theme.default.
func SelectTheme(cfg config.File, name string) (Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = cfg.UI.Theme.Default
	}
	th, ok := cfg.UI.Themes[name]
	if !ok {
		return Theme{}, ThemeSelectionError{Selected: name, Available: cfg.ThemeNames(), Default: cfg.UI.Theme.Default}
	}
	return ThemeFromConfig(th), nil
}

func normalizeBorderStyle(val string) string {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "rounded", "round":
		return "rounded"
	default:
		return "normal"
	}
}

func borderForStyle(style string) lipgloss.Border {
	if normalizeBorderStyle(style) == "rounded" {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.NormalBorder()
}

// tableColors maps the theme onto the table view.
func (th Theme) tableColors() uitable.Colors {
	return uitable.Colors{
		HeaderFG:   th.HeaderFG,
		HeaderBG:   th.HeaderBG,
		CellFG:     th.CellFG,
		BorderFG:   th.BorderColor,
		SelectedFG: th.SelectedFG,
		SelectedBG: th.SelectedBG,
	}
}
