package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// errUsage marks errors caused by bad flags or input; they exit with 2.
var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// sortFlag parses "field", "field:asc" or "field:desc".
type sortFlag struct {
	state datatable.SortState
}

var _ pflag.Value = (*sortFlag)(nil)

func (s *sortFlag) String() string {
	if s.state.Field == "" {
		return ""
	}
	if s.state.Ascending {
		return s.state.Field + ":asc"
	}
	return s.state.Field + ":desc"
}

func (s *sortFlag) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		s.state = datatable.SortState{}
		return nil
	}
	field, dir, _ := strings.Cut(v, ":")
	field = strings.TrimSpace(field)
	if field == "" {
		return fmt.Errorf("missing field in %q", v)
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc", "ascending":
		s.state = datatable.SortState{Field: field, Ascending: true}
	case "desc", "descending":
		s.state = datatable.SortState{Field: field, Ascending: false}
	default:
		return fmt.Errorf("invalid sort direction %q (expected asc or desc)", dir)
	}
	return nil
}

func (s *sortFlag) Type() string { return "field[:asc|desc]" }

// selectColumns keeps the named columns in the given order and makes them
// visible. An empty list keeps cols unchanged.
func selectColumns(cols []datatable.Column, fields []string) ([]datatable.Column, error) {
	if len(fields) == 0 {
		return cols, nil
	}
	byField := make(map[string]datatable.Column, len(cols))
	for _, c := range cols {
		byField[c.Field] = c
	}
	out := make([]datatable.Column, 0, len(fields))
	seen := map[string]bool{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		c, ok := byField[f]
		if !ok {
			return nil, usageErrorf("unknown column %q in --columns", f)
		}
		seen[f] = true
		c.Options.Display = nil
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, usageErrorf("--columns selects no columns")
	}
	return out, nil
}
