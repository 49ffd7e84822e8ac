// Package config defines the dtable configuration file and its embedded
// defaults.
package config

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// File is the complete configuration: application metadata, UI theming and
// table defaults.
type File struct {
	App   AppConfig   `yaml:"app" toml:"app"`
	UI    UIConfig    `yaml:"ui" toml:"ui"`
	Table TableConfig `yaml:"table" toml:"table"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	About AboutConfig `yaml:"about" toml:"about"`
}

// AboutConfig contains application metadata. Version, GoVersion and
// GitCommit are filled from build info at load time.
type AboutConfig struct {
	Name          string   `yaml:"name,omitempty" toml:"name,omitempty"`
	Description   string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Version       string   `yaml:"version,omitempty" toml:"version,omitempty"`
	GoVersion     string   `yaml:"go_version,omitempty" toml:"go_version,omitempty"`
	GitCommit     string   `yaml:"git_commit,omitempty" toml:"git_commit,omitempty"`
	License       string   `yaml:"license,omitempty" toml:"license,omitempty"`
	RepositoryURL string   `yaml:"repository_url,omitempty" toml:"repository_url,omitempty"`
	Details       []string `yaml:"details,omitempty" toml:"details,omitempty"`
}

// UIConfig holds theme selection and theme definitions.
type UIConfig struct {
	Theme  ThemeSelection         `yaml:"theme" toml:"theme"`
	Themes map[string]ThemeConfig `yaml:"themes" toml:"themes"`
}

// ThemeSelection names the theme used when --theme is not given.
type ThemeSelection struct {
	Default string `yaml:"default,omitempty" toml:"default,omitempty"`
}

// ColorValue stores a color token (an ANSI number, a name or #rrggbb) and
// marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (any, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// UnmarshalText accepts TOML strings.
func (c *ColorValue) UnmarshalText(text []byte) error {
	*c = ColorValue(text)
	return nil
}

// ThemeConfig is the file form of a theme. Empty fields inherit from the
// base theme.
type ThemeConfig struct {
	HeaderFG      ColorValue `yaml:"header_fg,omitempty" toml:"header_fg,omitempty"`
	HeaderBG      ColorValue `yaml:"header_bg,omitempty" toml:"header_bg,omitempty"`
	CellFG        ColorValue `yaml:"cell_fg,omitempty" toml:"cell_fg,omitempty"`
	BorderColor   ColorValue `yaml:"border_color,omitempty" toml:"border_color,omitempty"`
	BorderStyle   string     `yaml:"border_style,omitempty" toml:"border_style,omitempty"`
	SelectedFG    ColorValue `yaml:"selected_fg,omitempty" toml:"selected_fg,omitempty"`
	SelectedBG    ColorValue `yaml:"selected_bg,omitempty" toml:"selected_bg,omitempty"`
	ActiveColumn  ColorValue `yaml:"active_column,omitempty" toml:"active_column,omitempty"`
	CheckedColor  ColorValue `yaml:"checked_color,omitempty" toml:"checked_color,omitempty"`
	InputFG       ColorValue `yaml:"input_fg,omitempty" toml:"input_fg,omitempty"`
	InputBG       ColorValue `yaml:"input_bg,omitempty" toml:"input_bg,omitempty"`
	StatusColor   ColorValue `yaml:"status_color,omitempty" toml:"status_color,omitempty"`
	StatusError   ColorValue `yaml:"status_error,omitempty" toml:"status_error,omitempty"`
	StatusSuccess ColorValue `yaml:"status_success,omitempty" toml:"status_success,omitempty"`
	FooterFG      ColorValue `yaml:"footer_fg,omitempty" toml:"footer_fg,omitempty"`
	HelpKey       ColorValue `yaml:"help_key,omitempty" toml:"help_key,omitempty"`
	HelpValue     ColorValue `yaml:"help_value,omitempty" toml:"help_value,omitempty"`
	PageActive    ColorValue `yaml:"page_active,omitempty" toml:"page_active,omitempty"`
	PageInactive  ColorValue `yaml:"page_inactive,omitempty" toml:"page_inactive,omitempty"`
}

// TableConfig holds column descriptors and table options.
type TableConfig struct {
	Columns []ColumnConfig `yaml:"columns,omitempty" toml:"columns,omitempty"`
	Options OptionsConfig  `yaml:"options" toml:"options"`
}

// ColumnConfig describes one column. Render is a text/template with sprig
// functions; see render.Template.
type ColumnConfig struct {
	Field   string `yaml:"field" toml:"field"`
	Label   string `yaml:"label,omitempty" toml:"label,omitempty"`
	Sort    *bool  `yaml:"sort,omitempty" toml:"sort,omitempty"`
	Display *bool  `yaml:"display,omitempty" toml:"display,omitempty"`
	Render  string `yaml:"render,omitempty" toml:"render,omitempty"`
	Width   int    `yaml:"width,omitempty" toml:"width,omitempty"`
}

// OptionsConfig mirrors datatable.Options. Nil pointers keep the default.
type OptionsConfig struct {
	RowsPerPage                  *int             `yaml:"rows_per_page,omitempty" toml:"rows_per_page,omitempty"`
	RowsPerPageOptions           []int            `yaml:"rows_per_page_options,omitempty" toml:"rows_per_page_options,omitempty"`
	Pagination                   *bool            `yaml:"pagination,omitempty" toml:"pagination,omitempty"`
	Responsive                   *bool            `yaml:"responsive,omitempty" toml:"responsive,omitempty"`
	ResponsiveMinWidth           *int             `yaml:"responsive_min_width,omitempty" toml:"responsive_min_width,omitempty"`
	SelectableRowsHideCheckboxes *bool            `yaml:"selectable_rows_hide_checkboxes,omitempty" toml:"selectable_rows_hide_checkboxes,omitempty"`
	ResizableColumns             *bool            `yaml:"resizable_columns,omitempty" toml:"resizable_columns,omitempty"`
	TextLabels                   TextLabelsConfig `yaml:"text_labels" toml:"text_labels"`
}

// TextLabelsConfig overrides the UI strings.
type TextLabelsConfig struct {
	Body       BodyLabelsConfig       `yaml:"body" toml:"body"`
	Pagination PaginationLabelsConfig `yaml:"pagination" toml:"pagination"`
}

// BodyLabelsConfig overrides the table body strings.
type BodyLabelsConfig struct {
	NoMatch string `yaml:"no_match,omitempty" toml:"no_match,omitempty"`
	ToolTip string `yaml:"tool_tip,omitempty" toml:"tool_tip,omitempty"`
}

// PaginationLabelsConfig overrides the pagination strings.
type PaginationLabelsConfig struct {
	First       string `yaml:"first,omitempty" toml:"first,omitempty"`
	Previous    string `yaml:"previous,omitempty" toml:"previous,omitempty"`
	Next        string `yaml:"next,omitempty" toml:"next,omitempty"`
	Last        string `yaml:"last,omitempty" toml:"last,omitempty"`
	RowsPerPage string `yaml:"rows_per_page,omitempty" toml:"rows_per_page,omitempty"`
	DisplayRows string `yaml:"display_rows,omitempty" toml:"display_rows,omitempty"`
}
