// Package filter narrows a row set, either by a CEL predicate evaluated
// against each row or by a case-insensitive text search over the visible
// columns.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/dtable/internal/render"
	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// RowVariable is the name a row is bound to in filter expressions.
const RowVariable = "row"

// ErrNotBool is returned when a filter expression yields a non-bool value.
var ErrNotBool = errors.New("filter expression must evaluate to a bool")

// Evaluator compiles filter expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an Evaluator with the CEL strings, encoders, lists and
// math extensions enabled.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable(RowVariable, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Predicate is a compiled filter expression.
type Predicate struct {
	expr string
	prg  cel.Program
}

// Compile parses and checks expr. Expressions whose static type is known
// and not bool are rejected here; dynamic results are checked per row.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	expr = strings.TrimSpace(expr)
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); out != nil && !out.IsExactType(types.BoolType) && !out.IsExactType(types.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBool, out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate against row.
func (p *Predicate) Match(row datatable.Row) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{RowVariable: map[string]any(row)})
	if err != nil {
		return false, fmt.Errorf("eval error for row %q: %w", row.ID(), err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w, got %s", ErrNotBool, out.Type())
	}
	return bool(b), nil
}

// Rows returns the rows matching p, in order. A nil predicate keeps every row.
func Rows(rows []datatable.Row, p *Predicate) ([]datatable.Row, error) {
	if p == nil {
		return rows, nil
	}
	out := make([]datatable.Row, 0, len(rows))
	for _, row := range rows {
		ok, err := p.Match(row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// Search keeps rows where the display text of any visible column contains
// term, ignoring case. An empty term keeps every row.
func Search(rows []datatable.Row, columns []datatable.Column, term string) []datatable.Row {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := make([]datatable.Row, 0, len(rows))
	for _, row := range rows {
		for _, col := range columns {
			if !col.Visible() {
				continue
			}
			if strings.Contains(strings.ToLower(render.Cell(col, row)), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Query combines a text search and a predicate over an original row set.
type Query struct {
	Search    string
	Predicate *Predicate
}

// Active reports whether the query narrows anything.
func (q Query) Active() bool {
	return strings.TrimSpace(q.Search) != "" || q.Predicate != nil
}

// Apply runs the search, then the predicate.
func (q Query) Apply(rows []datatable.Row, columns []datatable.Column) ([]datatable.Row, error) {
	return Rows(Search(rows, columns, q.Search), q.Predicate)
}
