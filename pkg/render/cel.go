package render

import (
	"github.com/google/cel-go/cel"

	"digital.vasic.docrender/pkg/content"
)

// filterCostLimit bounds the evaluation cost of a filter
// expression per item.
const filterCostLimit = 1000000

// celFilter selects items with a CEL expression. A compiled
// program is safe for concurrent evaluation.
type celFilter struct {
	expr string
	prog cel.Program
}

// compileFilter compiles expr over the item variables kind,
// column, table_level, success, evaluated and kwargs.
func compileFilter(expr string) (*celFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("kind", cel.StringType),
		cel.Variable("column", cel.StringType),
		cel.Variable("table_level", cel.BoolType),
		cel.Variable("success", cel.BoolType),
		cel.Variable("evaluated", cel.BoolType),
		cel.Variable("kwargs", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, configErrorf("filter", "create CEL environment: %v", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, configErrorf("filter", "compile %q: %v", expr, issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, configErrorf("filter", "%q must evaluate to bool, not %s", expr, out)
	}

	prog, err := env.Program(ast, cel.CostLimit(filterCostLimit))
	if err != nil {
		return nil, configErrorf("filter", "program %q: %v", expr, err)
	}
	return &celFilter{expr: expr, prog: prog}, nil
}

// Match reports whether item passes the filter.
func (f *celFilter) Match(item content.Item) (bool, error) {
	exp := item.Expectation
	kwargs := exp.Kwargs
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	vars := map[string]any{
		"kind":        exp.Kind,
		"column":      exp.TargetColumn(),
		"table_level": exp.IsTableLevel(),
		"success":     item.Result != nil && item.Result.Succeeded(),
		"evaluated":   item.Result != nil && item.Result.HasOutcome(),
		"kwargs":      kwargs,
	}

	out, _, err := f.prog.Eval(vars)
	if err != nil {
		return false, configErrorf("filter", "evaluate %q: %v", f.expr, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, configErrorf("filter", "%q returned %T, not bool", f.expr, out.Value())
	}
	return matched, nil
}
