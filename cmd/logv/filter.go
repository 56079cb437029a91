package main

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/logv/ast"
	"github.com/signadot/logv/record"
)

// filter is a compiled -where expression. Programs are shared; each
// worker runs them on its own vm.
type filter struct {
	src     string
	program *vm.Program
}

func newFilter(src string) (*filter, error) {
	program, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	return &filter{src: src, program: program}, nil
}

// match evaluates the filter with the record's top level fields as
// variables, along with time, level, message, logger and caller.
func (f *filter) match(machine *vm.VM, rec *record.Record) (bool, error) {
	res, err := machine.Run(f.program, env(rec))
	if err != nil {
		return false, fmt.Errorf("error evaluating %q: %w", f.src, err)
	}
	b, _ := res.(bool)
	return b, nil
}

func env(rec *record.Record) map[string]any {
	m := map[string]any{}
	for fld := range rec.FieldsForSearch() {
		m[fld.Key.String()] = goValue(fld.Value)
	}
	if ts, ok := rec.Time(); ok {
		if tm, ok := ts.Time(); ok {
			m["time"] = tm
		} else {
			m["time"] = ts.Raw
		}
	}
	if lvl, ok := rec.Level(); ok {
		m["level"] = lvl.String()
	}
	if msg, ok := rec.MessageValue(); ok {
		m["message"] = goValue(msg)
	}
	if lg, ok := rec.Logger(); ok {
		m["logger"] = lg
	}
	if c, ok := rec.Caller(); ok {
		m["caller"] = c.String()
	}
	return m
}

func goValue(v record.Value) any {
	switch v.Kind() {
	case ast.KindArray:
		res := []any{}
		for e := range v.Elems() {
			res = append(res, goValue(e))
		}
		return res
	case ast.KindObject:
		res := map[string]any{}
		for f := range v.Fields() {
			res[f.Key.String()] = goValue(f.Value)
		}
		return res
	default:
		return goScalar(v.Scalar())
	}
}

func goScalar(v ast.Value) any {
	switch v.Kind {
	case ast.KindNull:
		return nil
	case ast.KindBool:
		return v.Bool
	case ast.KindNumber:
		if i, err := strconv.Atoi(v.Number()); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.Number(), 64); err == nil {
			return f
		}
		return v.Number()
	default:
		return v.Text.String()
	}
}
