package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtable/pkg/settings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// FileName is the config file looked up under the XDG config directory.
const FileName = "config.yaml"

// ResolvePath returns explicit when set, otherwise
// $XDG_CONFIG_HOME/dtable/config.yaml or ~/.config/dtable/config.yaml when
// that file exists. It returns "" when there is nothing to load.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	var dir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dir = filepath.Join(xdg, settings.CliBinaryName)
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", settings.CliBinaryName)
	}
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Decode parses a config document. Files ending in .toml are read as TOML,
// everything else as YAML.
func Decode(data []byte, path string) (File, error) {
	var f File
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("decode %s: %w", path, err)
		}
		return f, nil
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// Load merges the config at path over the embedded defaults, fills in the
// build metadata, expands about.details templates and validates the result.
// An empty path loads the defaults alone.
func Load(path string) (File, error) {
	def, err := Default()
	if err != nil {
		return File{}, err
	}
	cfg := Merge(def, File{})
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, err
		}
		user, err := Decode(data, path)
		if err != nil {
			return File{}, err
		}
		cfg = Merge(cfg, user)
	}
	applyBuildData(&cfg)
	cfg.App.About.Details = expandDetails(cfg)
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Merge returns base with every set field of override applied. Themes merge
// per field; a non-empty column list replaces base's.
func Merge(base, override File) File {
	out := base
	out.UI.Themes = maps.Clone(base.UI.Themes)
	if out.UI.Themes == nil {
		out.UI.Themes = map[string]ThemeConfig{}
	}
	out.Table.Columns = slices.Clone(base.Table.Columns)
	out.App.About.Details = slices.Clone(base.App.About.Details)
	out.Table.Options.RowsPerPageOptions = slices.Clone(base.Table.Options.RowsPerPageOptions)

	a, o := &out.App.About, override.App.About
	setString(&a.Name, o.Name)
	setString(&a.Description, o.Description)
	setString(&a.License, o.License)
	setString(&a.RepositoryURL, o.RepositoryURL)
	if len(o.Details) > 0 {
		a.Details = slices.Clone(o.Details)
	}

	setString(&out.UI.Theme.Default, override.UI.Theme.Default)
	for name, th := range override.UI.Themes {
		out.UI.Themes[name] = mergeTheme(out.UI.Themes[name], th)
	}

	if len(override.Table.Columns) > 0 {
		out.Table.Columns = slices.Clone(override.Table.Columns)
	}
	out.Table.Options = mergeOptions(out.Table.Options, override.Table.Options)
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setColor(dst *ColorValue, v ColorValue) {
	if v != "" {
		*dst = v
	}
}

func mergeTheme(base, o ThemeConfig) ThemeConfig {
	setColor(&base.HeaderFG, o.HeaderFG)
	setColor(&base.HeaderBG, o.HeaderBG)
	setColor(&base.CellFG, o.CellFG)
	setColor(&base.BorderColor, o.BorderColor)
	setString(&base.BorderStyle, o.BorderStyle)
	setColor(&base.SelectedFG, o.SelectedFG)
	setColor(&base.SelectedBG, o.SelectedBG)
	setColor(&base.ActiveColumn, o.ActiveColumn)
	setColor(&base.CheckedColor, o.CheckedColor)
	setColor(&base.InputFG, o.InputFG)
	setColor(&base.InputBG, o.InputBG)
	setColor(&base.StatusColor, o.StatusColor)
	setColor(&base.StatusError, o.StatusError)
	setColor(&base.StatusSuccess, o.StatusSuccess)
	setColor(&base.FooterFG, o.FooterFG)
	setColor(&base.HelpKey, o.HelpKey)
	setColor(&base.HelpValue, o.HelpValue)
	setColor(&base.PageActive, o.PageActive)
	setColor(&base.PageInactive, o.PageInactive)
	return base
}

func mergeOptions(base, o OptionsConfig) OptionsConfig {
	if o.RowsPerPage != nil {
		base.RowsPerPage = o.RowsPerPage
	}
	if len(o.RowsPerPageOptions) > 0 {
		base.RowsPerPageOptions = slices.Clone(o.RowsPerPageOptions)
	}
	if o.Pagination != nil {
		base.Pagination = o.Pagination
	}
	if o.Responsive != nil {
		base.Responsive = o.Responsive
	}
	if o.ResponsiveMinWidth != nil {
		base.ResponsiveMinWidth = o.ResponsiveMinWidth
	}
	if o.SelectableRowsHideCheckboxes != nil {
		base.SelectableRowsHideCheckboxes = o.SelectableRowsHideCheckboxes
	}
	if o.ResizableColumns != nil {
		base.ResizableColumns = o.ResizableColumns
	}
	b, ob := &base.TextLabels.Body, o.TextLabels.Body
	setString(&b.NoMatch, ob.NoMatch)
	setString(&b.ToolTip, ob.ToolTip)
	p, op := &base.TextLabels.Pagination, o.TextLabels.Pagination
	setString(&p.First, op.First)
	setString(&p.Previous, op.Previous)
	setString(&p.Next, op.Next)
	setString(&p.Last, op.Last)
	setString(&p.RowsPerPage, op.RowsPerPage)
	setString(&p.DisplayRows, op.DisplayRows)
	return base
}

func applyBuildData(cfg *File) {
	a := &cfg.App.About
	a.Version = settings.VersionInformation.BuildVersion
	a.GitCommit = settings.VersionInformation.Commit
	a.GoVersion = "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		a.GoVersion = info.GoVersion
	}
}

// expandDetails renders about.details lines as templates over the about
// block. Lines that fail to parse or execute are kept verbatim.
func expandDetails(cfg File) []string {
	a := cfg.App.About
	data := map[string]any{
		"app": map[string]any{
			"name":        a.Name,
			"description": a.Description,
			"version":     a.Version,
			"go_version":  a.GoVersion,
			"git_commit":  a.GitCommit,
			"license":     a.License,
		},
	}
	out := make([]string, len(a.Details))
	for i, line := range a.Details {
		out[i] = expandTemplate(line, data)
	}
	return out
}

func expandTemplate(text string, data map[string]any) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	tmpl, err := template.New("config").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return text
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return text
	}
	return buf.String()
}

// Validate checks the merged config.
func (f File) Validate() error {
	if len(f.UI.Themes) == 0 {
		return fmt.Errorf("%w: no themes defined", ErrInvalidConfig)
	}
	if _, ok := f.UI.Themes[f.UI.Theme.Default]; !ok {
		return fmt.Errorf("%w: default theme %q is not defined (available: %s)",
			ErrInvalidConfig, f.UI.Theme.Default, strings.Join(f.ThemeNames(), ", "))
	}
	opts := f.Table.Options
	if opts.RowsPerPage != nil && *opts.RowsPerPage < 1 {
		return fmt.Errorf("%w: table.options.rows_per_page must be at least 1, got %d", ErrInvalidConfig, *opts.RowsPerPage)
	}
	for _, n := range opts.RowsPerPageOptions {
		if n < 1 {
			return fmt.Errorf("%w: table.options.rows_per_page_options must be positive, got %d", ErrInvalidConfig, n)
		}
	}
	seen := map[string]bool{}
	for i, c := range f.Table.Columns {
		if strings.TrimSpace(c.Field) == "" {
			return fmt.Errorf("%w: table.columns[%d] has no field", ErrInvalidConfig, i)
		}
		if seen[c.Field] {
			return fmt.Errorf("%w: table.columns has duplicate field %q", ErrInvalidConfig, c.Field)
		}
		seen[c.Field] = true
	}
	return nil
}

// ThemeNames returns the defined theme names, sorted.
func (f File) ThemeNames() []string {
	return slices.Sorted(maps.Keys(f.UI.Themes))
}

// Marshal encodes cfg as YAML with two-space indentation.
func Marshal(cfg File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
