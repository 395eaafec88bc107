// Package inline implements the inliner (C4): whole-program lowering of
// a checked Program into a single expression in which every Call targets
// only a runtime built-in. Grounded on the original compiler's inliner
// pass (self_inline / inline_one / program_inline), adapted to operate
// over the Go AST and the subst/fold packages.
package inline

import (
	"github.com/creaturelang/critterc/internal/ast"
	"github.com/creaturelang/critterc/internal/fold"
	"github.com/creaturelang/critterc/internal/subst"
)

// Program reduces prog to the fully-inlined body of its last function
// (main), eliminating every call to a user-defined function. depth bounds
// self-recursive inlining; functions unreachable from main are silently
// discarded, matching the documented failure model.
func Program(prog *ast.Program, depth int) ast.Expression {
	fns := prog.Functions
	if len(fns) == 0 {
		return &ast.Chain{}
	}

	m := fns[len(fns)-1].Body
	for i := len(fns) - 2; i >= 0; i-- {
		g := selfInline(fns[i], depth)
		m = fold.Fold(inlineOne(m, g))
	}
	return m
}

// selfInline pre-processes a function definition so that its body's
// self-calls are resolved up to depth levels deep, then stubbed.
func selfInline(f *ast.FunctionDef, depth int) *ast.FunctionDef {
	body := f.Body
	self := &ast.FunctionDef{LineNo: f.LineNo, Name: f.Name, Params: f.Params, Return: f.Return, Body: body}

	for i := 0; i < depth; i++ {
		body = inlineOne(body, self)
	}

	body = stub(body, f.Name, defaultValue(f.Return))
	body = fold.Fold(body)

	return &ast.FunctionDef{LineNo: f.LineNo, Name: f.Name, Params: f.Params, Return: f.Return, Body: body}
}

// inlineOne rewrites expr, replacing every Call to target.Name with a
// copy of target's body, its parameters bound to the call's argument
// expressions via subst.Substitute. Calls to any other function have
// their arguments inlined recursively but are otherwise left in place.
func inlineOne(expr ast.Expression, target *ast.FunctionDef) ast.Expression {
	switch e := expr.(type) {
	case *ast.Literal:
		return e

	case *ast.Variable:
		return e

	case *ast.Call:
		args := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = inlineOne(a, target)
		}
		if e.Name != target.Name {
			return &ast.Call{LineNo: e.LineNo, Type: e.Type, Name: e.Name, Args: args}
		}
		bindings := make(map[string]ast.Expression, len(target.Params))
		for i, p := range target.Params {
			if i < len(args) {
				bindings[p.Name] = args[i]
			}
		}
		return subst.Substitute(target.Body, bindings)

	case *ast.Binary:
		return &ast.Binary{LineNo: e.LineNo, Op: e.Op, E1: inlineOne(e.E1, target), E2: inlineOne(e.E2, target)}

	case *ast.IfElse:
		return &ast.IfElse{LineNo: e.LineNo, Cond: inlineOne(e.Cond, target), Then: inlineOne(e.Then, target), Else: inlineOne(e.Else, target)}

	case *ast.Assign:
		return &ast.Assign{LineNo: e.LineNo, Name: e.Name, Value: inlineOne(e.Value, target)}

	case *ast.Chain:
		exprs := make([]ast.Expression, len(e.Exprs))
		for i, sub := range e.Exprs {
			exprs[i] = inlineOne(sub, target)
		}
		return &ast.Chain{LineNo: e.LineNo, Exprs: exprs}
	}

	return expr
}

// stub replaces every remaining self-call to fnName with a default
// literal for its return type, terminating otherwise-unbounded recursion.
func stub(expr ast.Expression, fnName string, def ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.Literal:
		return e

	case *ast.Variable:
		return e

	case *ast.Call:
		if e.Name == fnName {
			return def
		}
		args := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = stub(a, fnName, def)
		}
		return &ast.Call{LineNo: e.LineNo, Type: e.Type, Name: e.Name, Args: args}

	case *ast.Binary:
		return &ast.Binary{LineNo: e.LineNo, Op: e.Op, E1: stub(e.E1, fnName, def), E2: stub(e.E2, fnName, def)}

	case *ast.IfElse:
		return &ast.IfElse{LineNo: e.LineNo, Cond: stub(e.Cond, fnName, def), Then: stub(e.Then, fnName, def), Else: stub(e.Else, fnName, def)}

	case *ast.Assign:
		return &ast.Assign{LineNo: e.LineNo, Name: e.Name, Value: stub(e.Value, fnName, def)}

	case *ast.Chain:
		exprs := make([]ast.Expression, len(e.Exprs))
		for i, sub := range e.Exprs {
			exprs[i] = stub(sub, fnName, def)
		}
		return &ast.Chain{LineNo: e.LineNo, Exprs: exprs}
	}

	return expr
}

func defaultValue(t ast.StaticType) ast.Expression {
	switch t {
	case ast.Int:
		return &ast.Literal{Value: ast.IntLit(0)}
	case ast.Bool:
		return &ast.Literal{Value: ast.BoolLit(false)}
	default:
		return &ast.Chain{}
	}
}
