// Package query filters and projects records for CLI output.
//
// Filters are expr-lang expressions evaluated against each record's JSON
// form, so field names are the wire names: price > 10 && category == "HOME".
// Selections are JSONPath expressions: $[*].name.
package query

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
	"github.com/ohler55/ojg/jp"
)

// Filter is a compiled boolean expression.
type Filter struct {
	source  string
	program *vm.Program
	fields  []string
}

// CompileFilter compiles expression once for repeated evaluation.
func CompileFilter(expression string) (*Filter, error) {
	refs := &fieldRefs{declared: make(map[string]bool)}
	program, err := expr.Compile(expression, expr.AsBool(), expr.Patch(refs))
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program, fields: refs.fields()}, nil
}

// fieldRefs collects the top-level names an expression reads from its
// environment. Names bound with let are not record fields.
type fieldRefs struct {
	seen     []string
	declared map[string]bool
}

func (r *fieldRefs) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.VariableDeclaratorNode:
		r.declared[n.Name] = true
	case *ast.IdentifierNode:
		if !slices.Contains(r.seen, n.Value) {
			r.seen = append(r.seen, n.Value)
		}
	}
}

func (r *fieldRefs) fields() []string {
	out := make([]string, 0, len(r.seen))
	for _, name := range r.seen {
		if !r.declared[name] {
			out = append(out, name)
		}
	}
	return out
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.source
}

// Match evaluates the filter against record.
func (f *Filter) Match(record any) (bool, error) {
	v, err := toJSONValue(record)
	if err != nil {
		return false, err
	}
	env, ok := v.(map[string]any)
	if !ok {
		return false, fmt.Errorf("filter %q: record is not an object", f.source)
	}
	for _, name := range f.fields {
		if _, ok := env[name]; !ok {
			return false, fmt.Errorf("filter %q: unknown field %q", f.source, name)
		}
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", f.source, err)
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.source, result)
	}
	return b, nil
}

// Apply returns the records f matches, in order. A nil filter matches all.
func Apply[R any](f *Filter, records []R) ([]R, error) {
	if f == nil {
		return records, nil
	}
	out := make([]R, 0, len(records))
	for _, r := range records {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Selector is a compiled JSONPath expression.
type Selector struct {
	path string
	x    jp.Expr
}

// CompileSelect parses a JSONPath expression.
func CompileSelect(path string) (*Selector, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", path, err)
	}
	return &Selector{path: path, x: x}, nil
}

// String returns the source path.
func (s *Selector) String() string {
	return s.path
}

// Get returns every value the path selects from v's JSON form. No match
// yields an empty, non-nil slice.
func (s *Selector) Get(v any) ([]any, error) {
	data, err := toJSONValue(v)
	if err != nil {
		return nil, err
	}
	results := s.x.Get(data)
	if results == nil {
		results = []any{}
	}
	return results, nil
}

// toJSONValue converts v to plain JSON values (map[string]any, []any,
// float64, string, bool, nil).
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
