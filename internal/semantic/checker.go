// Package semantic implements the bidirectional type checker (C5): a
// single traversal that checks an Expression against an expected
// StaticType, accumulating fail-soft CompilerErrors rather than stopping
// at the first problem, and returns a reshaped tree with Call nodes
// decorated with their resolved return type and bare zero-argument
// function names rewritten as Calls.
package semantic

import (
	"github.com/creaturelang/critterc/internal/ast"
	"github.com/creaturelang/critterc/internal/builtins"
	"github.com/creaturelang/critterc/internal/errors"
)

// funcEnv maps a function name (user or built-in) to its signature.
type funcEnv map[string]ast.FunctionSignature

// valueEnv maps an in-scope name (global or parameter) to its declared type.
type valueEnv map[string]ast.StaticType

// Check type-checks prog against the runtime environment runtimeEnv and
// returns a reshaped program plus any accumulated errors. A non-empty
// error list means the returned program must not be used downstream.
func Check(prog *ast.Program, runtimeEnv map[string]ast.FunctionSignature) (*ast.Program, []errors.CompilerError) {
	var errs []errors.CompilerError

	fEnv := make(funcEnv, len(runtimeEnv)+len(prog.Functions))
	for name, sig := range runtimeEnv {
		fEnv[name] = sig
	}

	globalSet := make(map[string]struct{}, len(prog.Globals))
	seenGlobal := make(map[string]int)
	for _, g := range prog.Globals {
		if line, dup := seenGlobal[g.Name]; dup {
			errs = append(errs, errors.Errorf(g.LineNo, "Duplicate global identifier `%s` (also declared at line %d)", g.Name, line))
			continue
		}
		seenGlobal[g.Name] = g.LineNo
		globalSet[g.Name] = struct{}{}
	}

	seenFunc := make(map[string]int)
	for _, f := range prog.Functions {
		if _, isBuiltin := fEnv[f.Name]; isBuiltin {
			if _, wasUser := seenFunc[f.Name]; !wasUser {
				errs = append(errs, errors.Errorf(f.LineNo, "Duplicate function identifier `%s` collides with a runtime built-in", f.Name))
			}
		}
		if line, dup := seenFunc[f.Name]; dup {
			errs = append(errs, errors.Errorf(f.LineNo, "Duplicate function identifier `%s` (also declared at line %d)", f.Name, line))
			continue
		}
		seenFunc[f.Name] = f.LineNo

		argTypes := make([]ast.StaticType, len(f.Params))
		for i, p := range f.Params {
			argTypes[i] = p.Type
		}
		fEnv[f.Name] = ast.FunctionSignature{ArgTypes: argTypes, Return: f.Return}
	}

	if len(prog.Functions) == 0 {
		errs = append(errs, errors.Errorf(0, "Missing main: program declares no functions"))
	} else {
		last := prog.Functions[len(prog.Functions)-1]
		switch {
		case last.Name != "main":
			errs = append(errs, errors.Errorf(last.LineNo, "Missing main: last function must be named `main`, found `%s`", last.Name))
		case len(last.Params) != 0:
			errs = append(errs, errors.Errorf(last.LineNo, "Missing main: `main` must take no arguments"))
		case last.Return != ast.Void:
			errs = append(errs, errors.Errorf(last.LineNo, "Missing main: `main` must return void, declared %s", last.Return.String()))
		}
	}

	checkedFns := make([]*ast.FunctionDef, len(prog.Functions))
	for i, f := range prog.Functions {
		vEnv := make(valueEnv, len(f.Params)+len(globalSet))
		for g := range globalSet {
			vEnv[g] = ast.Int
		}
		paramSeen := make(map[string]bool, len(f.Params))
		for _, p := range f.Params {
			if _, isGlobal := globalSet[p.Name]; isGlobal {
				errs = append(errs, errors.Errorf(f.LineNo, "Parameter `%s` of function `%s` collides with a global of the same name", p.Name, f.Name))
			}
			if paramSeen[p.Name] {
				errs = append(errs, errors.Errorf(f.LineNo, "Duplicate parameter name `%s` in function `%s`", p.Name, f.Name))
				continue
			}
			paramSeen[p.Name] = true
			vEnv[p.Name] = p.Type
		}

		body := check(f.Return, f.Body, fEnv, vEnv, globalSet, &errs)
		checkedFns[i] = &ast.FunctionDef{LineNo: f.LineNo, Name: f.Name, Params: f.Params, Return: f.Return, Body: body}
	}

	return &ast.Program{Globals: prog.Globals, Functions: checkedFns}, errs
}

// DefaultRuntimeEnv returns the runtime environment table built from the
// canonical built-in table.
func DefaultRuntimeEnv() map[string]ast.FunctionSignature {
	env := make(map[string]ast.FunctionSignature, len(builtins.Table))
	for name, b := range builtins.Table {
		env[name] = ast.FunctionSignature{ArgTypes: b.ArgTypes, Return: b.Return}
	}
	return env
}

func check(expected ast.StaticType, expr ast.Expression, fEnv funcEnv, vEnv valueEnv, globalSet map[string]struct{}, errs *[]errors.CompilerError) ast.Expression {
	switch e := expr.(type) {
	case *ast.Literal:
		actual := e.Value.Type()
		if actual != expected {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), actual.String()))
		}
		return e

	case *ast.Variable:
		actual, ok := vEnv[e.Name]
		if !ok {
			if sig, isFunc := fEnv[e.Name]; isFunc && len(sig.ArgTypes) == 0 {
				// A bare zero-argument function name (e.g. `forward`) is a call.
				return check(expected, &ast.Call{LineNo: e.LineNo, Name: e.Name}, fEnv, vEnv, globalSet, errs)
			}
			*errs = append(*errs, errors.Errorf(e.LineNo, "Undefined variable `%s`", e.Name))
			return e
		}
		if actual != expected {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), actual.String()))
		}
		return e

	case *ast.Call:
		sig, ok := fEnv[e.Name]
		if !ok {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Undefined function `%s`", e.Name))
			args := make([]ast.Expression, len(e.Args))
			for i, a := range e.Args {
				args[i] = check(ast.Int, a, fEnv, vEnv, globalSet, errs)
			}
			return &ast.Call{LineNo: e.LineNo, Type: expected, Name: e.Name, Args: args}
		}
		if sig.Return != expected {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), sig.Return.String()))
		}
		if len(sig.ArgTypes) != len(e.Args) {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Function `%s` expects %d argument(s), got %d", e.Name, len(sig.ArgTypes), len(e.Args)))
		}
		n := len(e.Args)
		if len(sig.ArgTypes) < n {
			n = len(sig.ArgTypes)
		}
		args := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			argExpected := ast.Int
			if i < n {
				argExpected = sig.ArgTypes[i]
			}
			args[i] = check(argExpected, a, fEnv, vEnv, globalSet, errs)
		}
		return &ast.Call{LineNo: e.LineNo, Type: sig.Return, Name: e.Name, Args: args}

	case *ast.Binary:
		switch {
		case e.Op.IsArithmetic():
			if expected != ast.Int {
				*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), ast.Int.String()))
			}
			e1 := check(ast.Int, e.E1, fEnv, vEnv, globalSet, errs)
			e2 := check(ast.Int, e.E2, fEnv, vEnv, globalSet, errs)
			return &ast.Binary{LineNo: e.LineNo, Op: e.Op, E1: e1, E2: e2}
		case e.Op.IsOrdering(), e.Op.IsEquality():
			if expected != ast.Bool {
				*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), ast.Bool.String()))
			}
			e1 := check(ast.Int, e.E1, fEnv, vEnv, globalSet, errs)
			e2 := check(ast.Int, e.E2, fEnv, vEnv, globalSet, errs)
			return &ast.Binary{LineNo: e.LineNo, Op: e.Op, E1: e1, E2: e2}
		case e.Op.IsLogical():
			if expected != ast.Bool {
				*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), ast.Bool.String()))
			}
			e1 := check(ast.Bool, e.E1, fEnv, vEnv, globalSet, errs)
			e2 := check(ast.Bool, e.E2, fEnv, vEnv, globalSet, errs)
			return &ast.Binary{LineNo: e.LineNo, Op: e.Op, E1: e1, E2: e2}
		default:
			return e
		}

	case *ast.IfElse:
		cond := check(ast.Bool, e.Cond, fEnv, vEnv, globalSet, errs)
		then := check(expected, e.Then, fEnv, vEnv, globalSet, errs)
		els := check(expected, e.Else, fEnv, vEnv, globalSet, errs)
		return &ast.IfElse{LineNo: e.LineNo, Cond: cond, Then: then, Else: els}

	case *ast.Assign:
		if expected != ast.Void {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), ast.Void.String()))
		}
		if _, ok := globalSet[e.Name]; !ok {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Undefined global variable `%s`", e.Name))
		}
		value := check(ast.Int, e.Value, fEnv, vEnv, globalSet, errs)
		return &ast.Assign{LineNo: e.LineNo, Name: e.Name, Value: value}

	case *ast.Chain:
		if expected != ast.Void {
			*errs = append(*errs, errors.Errorf(e.LineNo, "Expected type %s, actual type %s", expected.String(), ast.Void.String()))
		}
		exprs := make([]ast.Expression, len(e.Exprs))
		for i, sub := range e.Exprs {
			exprs[i] = check(ast.Void, sub, fEnv, vEnv, globalSet, errs)
		}
		return &ast.Chain{LineNo: e.LineNo, Exprs: exprs}
	}

	return expr
}
