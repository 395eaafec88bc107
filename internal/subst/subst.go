// Package subst implements variable substitution (C2): a structural
// rewrite replacing every Variable reference in a map by a deep copy of
// its bound expression. Grounded on the original compiler's renamer
// pass, adapted to Go's tagged-interface AST.
package subst

import "github.com/creaturelang/critterc/internal/ast"

// Substitute rewrites expr, replacing every Variable whose name is a key
// of bindings with a fresh copy of the bound expression. The map is a
// flat, non-shadowing environment: substitution never recurses into a
// substituted subtree using the same map, because the inliner's bindings
// are always fresh parameter names that cannot be captured.
func Substitute(expr ast.Expression, bindings map[string]ast.Expression) ast.Expression {
	switch e := expr.(type) {
	case *ast.Literal:
		return &ast.Literal{LineNo: e.LineNo, Value: e.Value}

	case *ast.Variable:
		if bound, ok := bindings[e.Name]; ok {
			return clone(bound)
		}
		return &ast.Variable{LineNo: e.LineNo, Name: e.Name}

	case *ast.Call:
		args := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = Substitute(a, bindings)
		}
		return &ast.Call{LineNo: e.LineNo, Type: e.Type, Name: e.Name, Args: args}

	case *ast.Binary:
		return &ast.Binary{
			LineNo: e.LineNo,
			Op:     e.Op,
			E1:     Substitute(e.E1, bindings),
			E2:     Substitute(e.E2, bindings),
		}

	case *ast.IfElse:
		return &ast.IfElse{
			LineNo: e.LineNo,
			Cond:   Substitute(e.Cond, bindings),
			Then:   Substitute(e.Then, bindings),
			Else:   Substitute(e.Else, bindings),
		}

	case *ast.Assign:
		return &ast.Assign{LineNo: e.LineNo, Name: e.Name, Value: Substitute(e.Value, bindings)}

	case *ast.Chain:
		exprs := make([]ast.Expression, len(e.Exprs))
		for i, sub := range e.Exprs {
			exprs[i] = Substitute(sub, bindings)
		}
		return &ast.Chain{LineNo: e.LineNo, Exprs: exprs}
	}

	return expr
}

// clone deep-copies expr without substituting anything, used when an
// already-bound argument expression is spliced into a new position.
func clone(expr ast.Expression) ast.Expression {
	return Substitute(expr, nil)
}
